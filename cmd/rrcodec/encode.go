package main

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/archetypes"
	bparchetypes "github.com/ajitpratap0/rerun-sdk-go/pkg/blueprint/archetypes"
	bpcomponents "github.com/ajitpratap0/rerun-sdk-go/pkg/blueprint/components"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/compression"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/encoding"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logger"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logtypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/observability"
)

type encodeOptions struct {
	output     string
	entity     string
	recording  string
	timeLink   string
	appendMode bool
}

func newEncodeCmd(a *app) *cobra.Command {
	opts := &encodeOptions{}
	cmd := &cobra.Command{
		Use:   "encode <file>...",
		Short: "Wrap media files into AssetVideo chunks and write a log stream",
		Long: `Encode reads each file, guesses its media type from the extension, and logs it
as an AssetVideo at /<file name> (or --entity for a single file).

Example:
  rrcodec encode clip.mp4 -o clip.rrd --compression zstd`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return observability.Trace(cmd.Context(), "rrcodec.encode", func(ctx context.Context) error {
				return runEncode(ctx, a, opts, args)
			}, attribute.Int("rerun.files", len(args)))
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output stream path (required)")
	cmd.Flags().StringVar(&opts.entity, "entity", "", "Entity path for a single input file")
	cmd.Flags().StringVar(&opts.recording, "recording-id", "", "Recording id (random if empty)")
	cmd.Flags().StringVar(&opts.timeLink, "time-axis-link", "", "Also write a blueprint whose time axis link is Independent or LinkToGlobal")
	cmd.Flags().BoolVar(&opts.appendMode, "append", false, "Append a new stream to an existing file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runEncode(ctx context.Context, a *app, opts *encodeOptions, paths []string) error {
	if opts.entity != "" && len(paths) > 1 {
		return errors.New(errors.ErrorTypeInvalidArgument, "--entity applies to a single input file")
	}

	compressionKind, err := encoding.ParseCompression(a.cfg.Encoding.Compression)
	if err != nil {
		return err
	}
	level, err := compression.ParseLevel(a.cfg.Encoding.Level)
	if err != nil {
		return err
	}

	storeID := logtypes.RandomStoreID(logtypes.StoreKindRecording)
	if opts.recording != "" {
		storeID = logtypes.StoreIDFromString(logtypes.StoreKindRecording, opts.recording)
	}
	appID := logtypes.ApplicationID(a.cfg.Encoding.ApplicationID)
	if appID == "" {
		appID = logtypes.UnknownApplicationID()
	}

	ctx = logger.ContextWithStoreID(ctx, storeID.String())
	log := logger.WithContext(ctx, a.log)

	msgs := []logtypes.LogMsg{logtypes.NewSetStoreInfo(logtypes.StoreInfo{
		ApplicationID: appID,
		StoreID:       storeID,
		StoreSource:   logtypes.FileSource("cli"),
	})}
	defer func() { releaseMessages(msgs) }()

	now := time.Now()
	for _, path := range paths {
		entity := logtypes.NewEntityPath(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		if opts.entity != "" {
			entity = logtypes.ParseEntityPath(opts.entity)
		}
		msg, err := videoMessage(storeID, entity, path, now)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
		log.Debug("wrapped file", zap.String("path", path), zap.String("entity_path", entity.String()))
	}

	if opts.timeLink != "" {
		blueprint, err := blueprintMessages(appID, opts.timeLink)
		if err != nil {
			return err
		}
		msgs = append(msgs, blueprint...)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if opts.appendMode {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(opts.output, flags, 0o644) //nolint:gosec // output path is chosen by the user
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFileOpenFailure, "failed to open output").WithDetail("path", opts.output)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	start := time.Now()
	err = encoding.EncodeAll(ctx, w, encoding.EncodingOptions{Compression: compressionKind, Serializer: encoding.SerializerJSON}, msgs,
		encoding.WithLogger(log),
		encoding.WithCompressionLevel(level),
		encoding.WithWorkers(a.cfg.Encoding.Workers),
	)
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeEncode, "failed to flush output").WithDetail("path", opts.output)
	}

	log.Info("stream written",
		zap.String("output", opts.output),
		zap.Int("messages", len(msgs)),
		zap.String("compression", compressionKind.String()),
		zap.Duration("duration", time.Since(start)))
	return nil
}

func videoMessage(storeID logtypes.StoreID, entity logtypes.EntityPath, path string, at time.Time) (*logtypes.ArrowMsg, error) {
	video, err := archetypes.AssetVideoFromFile(path)
	if err != nil {
		return nil, err
	}
	batches, err := video.AsBatches()
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, b := range batches {
			b.Release()
		}
	}()

	timepoint := logtypes.TimePoint{logtypes.TimestampCell(logtypes.LogTimeTimeline(), at)}
	chunk, err := logtypes.ChunkFromBatches(entity, timepoint, batches)
	if err != nil {
		return nil, err
	}
	defer chunk.Release()
	return chunk.ToArrowMsg(storeID, nil)
}

// blueprintMessages builds the application's default blueprint holding a
// time axis setting, and activates it.
func blueprintMessages(appID logtypes.ApplicationID, link string) ([]logtypes.LogMsg, error) {
	axis, err := bpcomponents.ParseLinkAxis(link)
	if err != nil {
		return nil, err
	}
	timeAxis, err := bparchetypes.TimeAxis{}.WithLink(axis)
	if err != nil {
		return nil, err
	}
	batches, err := timeAxis.AsBatches()
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, b := range batches {
			b.Release()
		}
	}()

	blueprintID := logtypes.StoreIDFromString(logtypes.StoreKindBlueprint, appID.String())
	chunk, err := logtypes.ChunkFromBatches(logtypes.NewEntityPath("time_panel", "time_axis"), nil, batches)
	if err != nil {
		return nil, err
	}
	defer chunk.Release()
	msg, err := chunk.ToArrowMsg(blueprintID, nil)
	if err != nil {
		return nil, err
	}

	info := logtypes.NewSetStoreInfo(logtypes.StoreInfo{
		ApplicationID: appID,
		StoreID:       blueprintID,
		StoreSource:   logtypes.FileSource("cli"),
	})
	return []logtypes.LogMsg{info, msg, logtypes.MakeActive(blueprintID)}, nil
}

func releaseMessages(msgs []logtypes.LogMsg) {
	for _, msg := range msgs {
		if m, ok := msg.(*logtypes.ArrowMsg); ok {
			m.Release()
		}
	}
}
