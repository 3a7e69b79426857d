// Package rerun is a Go SDK for producing Rerun log streams.
//
// It covers the path from typed values to bytes on disk: component codecs
// that turn Go slices into Arrow arrays, archetypes that group components
// into logical objects, chunks that lay rows out as Arrow records, and an
// encoder that writes them as a compressed message stream.
//
// # Key Packages
//
//	pkg/loggable             - Codec contracts, component batches and columns, archetype tables
//	pkg/datatypes            - Arrow codecs for primitive value types
//	pkg/components           - Component types (Blob, MediaType, Scalar)
//	pkg/archetypes           - AssetVideo and Scalars
//	pkg/blueprint/components - Graph force and time axis components
//	pkg/blueprint/archetypes - Graph force and time axis archetypes
//	pkg/logtypes             - Store ids, log messages and chunks
//	pkg/encoding             - Stream encoder, decoder and push decoder
//	pkg/compression          - LZ4 and Zstd codecs
//	pkg/config               - Configuration loading with viper
//	pkg/logger               - Structured logging with zap
//	pkg/metrics              - Prometheus collectors
//
// # Quick Start
//
//	video, err := archetypes.AssetVideoFromFile("clip.mp4")
//	if err != nil {
//	    return err
//	}
//	batches, err := video.AsBatches()
//	if err != nil {
//	    return err
//	}
//	defer func() {
//	    for _, b := range batches {
//	        b.Release()
//	    }
//	}()
//	chunk, err := logtypes.ChunkFromBatches("/video", nil, batches)
//	if err != nil {
//	    return err
//	}
//	defer chunk.Release()
//
//	msg, err := chunk.ToArrowMsg(storeID, nil)
//	if err != nil {
//	    return err
//	}
//	defer msg.Release()
//	return encoding.EncodeAll(ctx, f, encoding.OptionsLZ4, []logtypes.LogMsg{
//	    logtypes.NewSetStoreInfo(info), msg,
//	})
//
// The rrcodec command wraps these steps for media files and can inspect
// existing streams.
package rerun
