// Package recording provides a graphics context that records the calls it
// receives as typed commands instead of drawing.
//
// The recording context backs tests, headless runs and debugging: every
// state change, program compilation, geometry binding and draw call is
// stored as an inspectable Command. A finished Recording can be replayed to
// any other device.Context.
//
// Design follows Cairo's approach of typed command structs for inspectability
// and debuggability, rather than a binary serialization format.
//
// # Example
//
//	ctx := recording.NewContext(device.Config{Width: 800, Height: 600})
//	if err := rendering.Render(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ctx.Count(recording.CmdDrawElements), "indexed draws")
//
//	// Replay to a real backend
//	rec := ctx.Finish()
//	err := rec.Playback(glContext)
//
// Importing the package registers the "recording" backend with device.Open.
//
// # Context Loss
//
// Lose simulates a lost context: Validate and Err report
// device.ErrContextLost and calls are dropped until Bind is called.
// LoseAfterDraws loses the context in the middle of a pass.
package recording
