/*
Package runner implements the host handoff for argtree dispatch results.

It acts as the bridge between the matching engine and the callbacks declared in the schema.
A successful result invokes the implementation adopted from the last entered task; a result
with structural errors folds the exception handlers from the innermost task outwards.
Every dispatch can be recorded in a ports.HistoryStore and reported through
LifecycleHooks.OnDispatch.

# Usage

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithHistory(memory.NewStore()),
	)

	res, err := engine.Run(ctx, os.Args[1:], cwd)
	if err != nil {
		log.Fatal(err)
	}
	out, err := r.Dispatch(ctx, res)
	os.Exit(out.ExitCode)
*/
package runner
