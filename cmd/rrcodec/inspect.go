package main

import (
	"bufio"
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/encoding"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/json"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logger"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logtypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/mmap"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/observability"
)

// messageSummary is the JSON line printed per decoded message.
type messageSummary struct {
	Kind        logtypes.MsgKind    `json:"kind"`
	StoreID     string              `json:"store_id"`
	StoreKind   logtypes.StoreKind  `json:"store_kind"`
	ChunkID     string              `json:"chunk_id,omitempty"`
	EntityPath  string              `json:"entity_path,omitempty"`
	Rows        int                 `json:"rows,omitempty"`
	Timelines   []string            `json:"timelines,omitempty"`
	Components  []string            `json:"components,omitempty"`
	Info        *logtypes.StoreInfo `json:"info,omitempty"`
	MakeActive  *bool               `json:"make_active,omitempty"`
	MakeDefault *bool               `json:"make_default,omitempty"`
}

func newInspectCmd(a *app) *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Decode a log stream and print one JSON summary per message",
		Long: `Inspect decodes every message of a stream (use - for stdin) and prints a JSON
summary of each. Concatenated streams are read back to back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return observability.Trace(cmd.Context(), "rrcodec.inspect", func(ctx context.Context) error {
				return runInspect(ctx, a, args[0], pretty, cmd.InOrStdin(), cmd.OutOrStdout())
			}, attribute.String("rerun.input", args[0]))
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output")
	return cmd
}

func runInspect(ctx context.Context, a *app, path string, pretty bool, in io.Reader, out io.Writer) error {
	log := logger.WithContext(logger.ContextWithRecording(ctx, path), a.log)

	var r io.Reader = bufio.NewReader(in)
	if path != "-" {
		mapped, err := mmap.NewReader(path)
		if err != nil {
			return err
		}
		defer func() {
			bytesRead, pagesRead := mapped.Stats()
			log.Debug("mapped input released",
				zap.Int("size", mapped.Len()),
				zap.Int64("bytes_read", bytesRead),
				zap.Int64("pages_read", pagesRead))
			_ = mapped.Close()
		}()
		r = mapped.NewStream()
	}

	dec, err := encoding.NewDecoder(r, encoding.WithLogger(log))
	if err != nil {
		return err
	}

	enc, err := json.NewStreamingEncoder(out, false)
	if err != nil {
		return err
	}
	if pretty {
		enc.SetPretty("  ")
	}

	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		summary, err := summarize(msg)
		if arrowMsg, ok := msg.(*logtypes.ArrowMsg); ok {
			arrowMsg.Release()
		}
		if err != nil {
			return err
		}
		if err := enc.Encode(summary); err != nil {
			return errors.Wrap(err, errors.ErrorTypeEncode, "failed to write summary")
		}
		count++
	}

	log.Info("stream inspected",
		zap.Int("messages", count),
		zap.String("version", dec.Version().String()),
		zap.String("compression", dec.Options().Compression.String()))
	return enc.Close()
}

func summarize(msg logtypes.LogMsg) (messageSummary, error) {
	storeID := logtypes.StoreIDOf(msg)
	s := messageSummary{Kind: msg.Kind(), StoreID: storeID.ID, StoreKind: storeID.Kind}

	switch m := msg.(type) {
	case *logtypes.SetStoreInfo:
		info := m.Info
		s.Info = &info
	case *logtypes.BlueprintActivationCommand:
		s.MakeActive = &m.MakeActive
		s.MakeDefault = &m.MakeDefault
	case *logtypes.ArrowMsg:
		chunk, err := logtypes.ChunkFromRecord(m.Batch)
		if err != nil {
			return s, err
		}
		defer chunk.Release()
		s.ChunkID = chunk.ID.String()
		s.EntityPath = chunk.EntityPath.String()
		s.Rows = chunk.NumRows()
		for _, tl := range chunk.Timelines {
			s.Timelines = append(s.Timelines, tl.Timeline.Name)
		}
		for _, col := range chunk.Components {
			s.Components = append(s.Components, col.Descriptor.String())
		}
	}
	return s, nil
}
