package logtypes

import (
	"sort"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
)

// TimeType is how the values of a timeline are interpreted.
type TimeType string

const (
	// TimeTypeSequence is a plain counter such as a frame number.
	TimeTypeSequence TimeType = "sequence"
	// TimeTypeDuration is nanoseconds relative to an arbitrary origin.
	TimeTypeDuration TimeType = "duration"
	// TimeTypeTimestamp is nanoseconds since the Unix epoch.
	TimeTypeTimestamp TimeType = "timestamp"
)

// ArrowDataType is the column type used for the time type.
func (t TimeType) ArrowDataType() (arrow.DataType, error) {
	switch t {
	case TimeTypeSequence:
		return arrow.PrimitiveTypes.Int64, nil
	case TimeTypeDuration:
		return arrow.FixedWidthTypes.Duration_ns, nil
	case TimeTypeTimestamp:
		return arrow.FixedWidthTypes.Timestamp_ns, nil
	default:
		return nil, errors.Newf(errors.ErrorTypeInvalidArgument, "unknown time type %q", string(t))
	}
}

func timeTypeOf(dt arrow.DataType) (TimeType, bool) {
	switch {
	case arrow.TypeEqual(dt, arrow.PrimitiveTypes.Int64):
		return TimeTypeSequence, true
	case dt.ID() == arrow.DURATION:
		return TimeTypeDuration, true
	case dt.ID() == arrow.TIMESTAMP:
		return TimeTypeTimestamp, true
	default:
		return "", false
	}
}

// Timeline is a named time axis.
type Timeline struct {
	Name string   `json:"name"`
	Type TimeType `json:"type"`
}

// NewSequenceTimeline returns a sequence timeline such as "frame".
func NewSequenceTimeline(name string) Timeline {
	return Timeline{Name: name, Type: TimeTypeSequence}
}

// LogTimeTimeline is the wall-clock timeline stamped on every log call.
func LogTimeTimeline() Timeline {
	return Timeline{Name: "log_time", Type: TimeTypeTimestamp}
}

// TimeCell is one index value on one timeline.
type TimeCell struct {
	Timeline Timeline
	Value    int64
}

// TimestampCell stamps t on the given timeline.
func TimestampCell(timeline Timeline, t time.Time) TimeCell {
	return TimeCell{Timeline: timeline, Value: t.UnixNano()}
}

// TimePoint is the set of index values a row is logged at. Cells are
// written in timeline name order regardless of the order given.
type TimePoint []TimeCell

func (tp TimePoint) sorted() TimePoint {
	out := make(TimePoint, len(tp))
	copy(out, tp)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timeline.Name < out[j].Timeline.Name })
	return out
}

// TimeColumn holds one timeline's values, one per chunk row.
type TimeColumn struct {
	Timeline Timeline
	Times    []int64
}

// Len is the number of rows.
func (c TimeColumn) Len() int {
	return len(c.Times)
}

func (c TimeColumn) toArrow(mem memory.Allocator) (arrow.Array, error) {
	dt, err := c.Timeline.Type.ArrowDataType()
	if err != nil {
		return nil, err
	}
	switch c.Timeline.Type {
	case TimeTypeSequence:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.AppendValues(c.Times, nil)
		return b.NewArray(), nil
	case TimeTypeDuration:
		b := array.NewDurationBuilder(mem, dt.(*arrow.DurationType))
		defer b.Release()
		b.Reserve(len(c.Times))
		for _, v := range c.Times {
			b.UnsafeAppend(arrow.Duration(v))
		}
		return b.NewArray(), nil
	default:
		b := array.NewTimestampBuilder(mem, dt.(*arrow.TimestampType))
		defer b.Release()
		b.Reserve(len(c.Times))
		for _, v := range c.Times {
			b.UnsafeAppend(arrow.Timestamp(v))
		}
		return b.NewArray(), nil
	}
}

func timeColumnFromArrow(name string, arr arrow.Array) (TimeColumn, error) {
	tt, ok := timeTypeOf(arr.DataType())
	if !ok {
		return TimeColumn{}, errors.Newf(errors.ErrorTypeDecode,
			"index column %q has unsupported type %s", name, arr.DataType())
	}
	if arr.NullN() > 0 {
		return TimeColumn{}, errors.Newf(errors.ErrorTypeDecode, "index column %q has nulls", name)
	}
	times := make([]int64, arr.Len())
	switch a := arr.(type) {
	case *array.Int64:
		copy(times, a.Int64Values())
	case *array.Duration:
		for i := range times {
			times[i] = int64(a.Value(i))
		}
	case *array.Timestamp:
		for i := range times {
			times[i] = int64(a.Value(i))
		}
	}
	return TimeColumn{Timeline: Timeline{Name: name, Type: tt}, Times: times}, nil
}
