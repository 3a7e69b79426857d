// Package logtypes defines the messages of a log stream and the chunks they
// carry.
//
// A stream for one store starts with a SetStoreInfo, followed by ArrowMsg
// values, each holding one Chunk laid out as an Arrow record:
//
//	chunk, err := logtypes.ChunkFromBatches("/world/points", timepoint, batches)
//	if err != nil {
//	    return err
//	}
//	defer chunk.Release()
//	msg, err := chunk.ToArrowMsg(storeID, nil)
//
// Blueprint stores may additionally be activated with a
// BlueprintActivationCommand.
package logtypes
