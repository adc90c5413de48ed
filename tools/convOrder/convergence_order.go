package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

func main() {
	field := flag.String("field", "", "field whose L2 error is studied, the first field when empty")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: convOrder [-field name] errors.csv...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}
	var runs []Run
	for _, file := range flag.Args() {
		f, err := os.Open(file)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		rr, err := ReadRuns(bufio.NewReader(f), *field)
		f.Close()
		if err != nil {
			fmt.Printf("%s: %v\n", file, err)
			os.Exit(1)
		}
		runs = append(runs, rr...)
	}
	for _, cs := range Studies(runs) {
		fmt.Printf("Method = %s, Order = %d\n", cs.Method, cs.Degree)
		orders := cs.Orders()
		for i, r := range cs.Runs {
			if i == 0 {
				fmt.Printf("%6d, %12.5e\n", r.Cells, r.L2)
				continue
			}
			fmt.Printf("%6d, %12.5e, %6.3f\n", r.Cells, r.L2, orders[i-1])
		}
	}
}

// Run is the last frame of one solver run in an errors.csv file.
type Run struct {
	ID     string
	Method string
	Degree int
	Cells  int
	Time   float64
	L2     float64
}

// ReadRuns keeps the row with the latest time for every run id.
func ReadRuns(r io.Reader, field string) (runs []Run, err error) {
	var records [][]string
	if records, err = csv.NewReader(r).ReadAll(); err != nil {
		return
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("no error rows")
	}
	iCol := -1
	for i, name := range records[0] {
		if strings.HasSuffix(name, "_L2") && (field == "" || name == field+"_L2") {
			iCol = i
			break
		}
	}
	if iCol < 0 {
		return nil, fmt.Errorf("no L2 column for field %q", field)
	}
	last := make(map[string]int)
	for _, rec := range records[1:] {
		var run Run
		run.ID, run.Method = rec[0], rec[1]
		if run.Degree, err = strconv.Atoi(rec[2]); err != nil {
			return
		}
		if run.Cells, err = strconv.Atoi(rec[3]); err != nil {
			return
		}
		if run.Time, err = strconv.ParseFloat(rec[5], 64); err != nil {
			return
		}
		if run.L2, err = strconv.ParseFloat(rec[iCol], 64); err != nil {
			return
		}
		if i, ok := last[run.ID]; ok {
			if run.Time >= runs[i].Time {
				runs[i] = run
			}
			continue
		}
		last[run.ID] = len(runs)
		runs = append(runs, run)
	}
	return
}

type ConvergenceStudy struct {
	Method string
	Degree int
	Runs   []Run
}

// Studies groups runs by method and degree, each sorted by cell count.
func Studies(runs []Run) (studies []*ConvergenceStudy) {
	index := make(map[string]*ConvergenceStudy)
	for _, r := range runs {
		key := r.Method + strconv.Itoa(r.Degree)
		cs, ok := index[key]
		if !ok {
			cs = &ConvergenceStudy{Method: r.Method, Degree: r.Degree}
			index[key] = cs
			studies = append(studies, cs)
		}
		cs.Runs = append(cs.Runs, r)
	}
	for _, cs := range studies {
		sort.Slice(cs.Runs, func(i, j int) bool { return cs.Runs[i].Cells < cs.Runs[j].Cells })
	}
	sort.Slice(studies, func(i, j int) bool {
		if studies[i].Method != studies[j].Method {
			return studies[i].Method < studies[j].Method
		}
		return studies[i].Degree < studies[j].Degree
	})
	return
}

// Orders are the observed orders between consecutive refinements.
func (cs *ConvergenceStudy) Orders() (orders []float64) {
	for i := 1; i < len(cs.Runs); i++ {
		a, b := cs.Runs[i-1], cs.Runs[i]
		orders = append(orders, math.Log(a.L2/b.L2)/math.Log(float64(b.Cells)/float64(a.Cells)))
	}
	return
}
