// SPDX-License-Identifier: EPL-2.0

// Package pipeline runs one audio block per transfer-complete event.
//
// A Pipeline owns a block of stereo frames allocated once by New and a
// Channel to exchange them with. Arm binds the pipeline to an EventSource;
// from then on every event performs one synchronous cycle:
//
//  1. acquire: Channel.AcquireInput decodes the completed input half into
//     the block. If no fresh data is available the cycle logs
//     "Error reading data!" and stops; the block is not touched and
//     nothing is submitted.
//  2. process: the Processor transforms the block in place. The default is
//     Identity, a pass-through.
//  3. submit: every frame, in order, goes back through
//     Channel.SubmitOutput. A failure here means the channel is sized
//     wrong; the handler panics with ErrSubmitFailed rather than retrying
//     or queueing.
//
// # Ownership
//
// The block and the channel belong to the event source's context once the
// pipeline is armed. Nothing else may call HandleTransferComplete or touch
// the channel, which is why none of this is locked.
//
// # Real-time constraints
//
// On the success path a cycle does not allocate and does not block. It has
// to finish within one block period (block size divided by sample rate,
// 1 ms for 48 frames at 48 kHz).
package pipeline
