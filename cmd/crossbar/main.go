package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/hfutlichao/badcrossbar/pkg/crossbar"
	"github.com/hfutlichao/badcrossbar/pkg/draw"
	"github.com/hfutlichao/badcrossbar/pkg/util"
)

var (
	rWordFlag = flag.Float64("rword", 0, "interconnect resistance per word line segment (ohm)")
	rBitFlag  = flag.Float64("rbit", 0, "interconnect resistance per bit line segment (ohm)")
	riFlag    = flag.Float64("ri", -1, "set both interconnect resistances at once (ohm)")
	allFlag   = flag.Bool("all", false, "print branch currents and node voltages too")
	workers   = flag.Int("workers", 1, "concurrent column solves for batched voltages")
	plotFlag  = flag.String("plot", "", "write a branch-current diagram to this file (.png/.svg/.pdf)")
	nodesFlag = flag.String("plot-nodes", "", "write a node-voltage diagram to this file")
	verbose   = flag.Bool("v", false, "debug logging to stderr")
)

func readMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no rows", path)
	}

	rows, cols := len(records), len(records[0])
	data := make([]float64, 0, rows*cols)
	for i, record := range records {
		if len(record) != cols {
			return nil, fmt.Errorf("%s: row %d has %d fields, want %d", path, i+1, len(record), cols)
		}
		for _, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: %v", path, i+1, err)
			}
			data = append(data, v)
		}
	}

	return mat.NewDense(rows, cols, data), nil
}

func printOutput(output *mat.Dense) {
	p, n := output.Dims()
	fmt.Println("\nOutput Currents:")
	fmt.Println("================")
	for k := 0; k < p; k++ {
		fmt.Printf("example %d: ", k)
		for j := 0; j < n; j++ {
			fmt.Printf("%s  ", util.FormatValueFactor(output.At(k, j), "A"))
		}
		fmt.Println()
	}
}

func printStack(name, unit string, s *crossbar.Stack) {
	m, n, p := s.Dims()
	fmt.Printf("\n%s:\n", name)
	for k := 0; k < p; k++ {
		if p > 1 {
			fmt.Printf("example %d:\n", k)
		}
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				fmt.Printf("%s  ", util.FormatValueFactor(s.At(i, j, k), unit))
			}
			fmt.Println()
		}
	}
}

func main() {
	flag.Parse()
	if flag.NArg() != 2 {
		log.Fatal("Usage: crossbar [flags] <resistances.csv> <voltages.csv>")
	}

	resistances, err := readMatrix(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error reading resistances: %v", err)
	}
	applied, err := readMatrix(flag.Arg(1))
	if err != nil {
		log.Fatalf("Error reading applied voltages: %v", err)
	}

	rWord, rBit := *rWordFlag, *rBitFlag
	if *riFlag >= 0 {
		rWord, rBit = *riFlag, *riFlag
	}

	opts := &crossbar.Options{
		Workers:            *workers,
		OutputCurrentsOnly: !*allFlag && *plotFlag == "",
		OmitNodeVoltages:   !*allFlag && *nodesFlag == "",
	}
	if *verbose {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	solution, err := crossbar.Solve(resistances, rWord, rBit, applied, opts)
	if err != nil {
		log.Fatalf("Error solving crossbar: %v", err)
	}

	printOutput(solution.Currents.Output)
	if *allFlag {
		printStack("Device Currents", "A", solution.Currents.Device)
		printStack("Word Line Currents", "A", solution.Currents.WordLine)
		printStack("Bit Line Currents", "A", solution.Currents.BitLine)
		printStack("Word Line Voltages", "V", solution.Voltages.WordLine)
		printStack("Bit Line Voltages", "V", solution.Voltages.BitLine)
	}

	if *plotFlag != "" {
		if err := draw.Branches(solution.Currents, *plotFlag, nil); err != nil {
			log.Fatalf("Error writing branch diagram: %v", err)
		}
	}
	if *nodesFlag != "" {
		if err := draw.Nodes(solution.Voltages, *nodesFlag, nil); err != nil {
			log.Fatalf("Error writing node diagram: %v", err)
		}
	}
}
