/*
Package operation turns discovered specification files into generated files.

	+-------------+     +-------------+     +-------------+
	|    read     | --> |  generate   | --> |    write    |
	| (parallel)  |     | (in order)  |     | (per file)  |
	+-------------+     +-------------+     +-------------+

🎯 Purpose:
- Reads every path the scanner emits, bounded by MaxOpenFiles
- Parses and generates in discovery order
- Writes each output file on its own goroutine, or only classifies it under dry run
- Counts successes and failures into an Outcome

Every stage is instrumented: its entries travel with its result in a
logctx.Context, a performance entry records how long it took, and the entries
are evaluated against the run's logger before the next stage starts. A file
that fails at any stage is reported as "path: message" and counted once.

🔍 Example:

	out := operation.RunPipeline(ctx, operation.Options[spec.Type]{
		Root:       ".",
		Suffix:     "value",
		Scanner:    pool,
		FileSystem: status.OS{},
		Parse:      spec.Parse,
		Generate:   generate,
		Logger:     logger,
	})
	outcome, err := operation.NewRunner(zerolog.Ctx(ctx)).Wait(ctx, out)
*/
package operation
