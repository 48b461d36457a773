// Command ewnbench runs a fixed number of searches from the starting
// position and prints the moves played, the elapsed time and the final
// board, for tuning K and T_max without driving ewnbot through the
// wire protocol. It does not compute a playouts-per-second rate.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jeffu110616/GameTheoryEinstein/ewn"
)

func usageError() {
	fmt.Fprintf(os.Stderr, "Usage: %v [moveCount]\n\n", os.Args[0])
	os.Exit(1)
}

// Grounded on Gongo's benchmark.go: a standalone binary that drives
// the engine directly for a fixed number of moves and prints a
// summary, rather than speaking the wire protocol.
func main() {
	moveCount := 10
	if len(os.Args) >= 2 {
		val, err := strconv.Atoi(os.Args[1])
		if err != nil {
			usageError()
		}
		moveCount = val
	}
	if len(os.Args) > 2 {
		usageError()
	}

	cfg := ewn.DefaultConfig()
	logger, logFile, err := ewn.NewLogger("ewnbench.log", "bench")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ewnbench: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	rnd := ewn.NewRandomness(time.Now().UnixNano())
	search := ewn.NewSearch(cfg, rnd, logger)

	board, err := ewn.NewBoard("012345", "012345", ewn.Red)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ewnbench: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	totalIterations := 0
	played := 0
	for i := 0; i < moveCount && board.Winner() == ewn.Other; i++ {
		move := search.Run(board, i/2)
		board.MakeMove(move)
		totalIterations += cfg.K
		played++
	}
	elapsed := time.Since(start)

	fmt.Printf("moves played: %d\n", played)
	fmt.Printf("elapsed: %v\n", elapsed)
	fmt.Printf("rollouts (approx, batch size %d per expansion): %d\n", cfg.K, totalIterations)
	fmt.Println(board.String())
}
