// Command infoprop computes activation beliefs over probabilistic DAGs,
// conditioning on diamond structures so that correlated paths are not
// counted as independent evidence.
//
//	infoprop propagate --input net.csv
//	infoprop diamonds  --input net.yaml --output json
//	infoprop cutset    --input net.csv --sink 12
//	infoprop validate  --input net.csv
//	infoprop montecarlo --input net.csv --samples 500000 --seed 7
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
