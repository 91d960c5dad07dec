package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"
)

// DoctorCmd runs diagnostics against the data path. Every mutation
// rewrites the whole store, so a second running pointbook process can
// silently overwrite this one's writes; the process check surfaces
// that.
type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("FAIL storage reachable: %v\n", err)
		hasError = true
	} else {
		fmt.Println("ok   storage reachable")

		cfg, err := ctx.Store.Config()
		if err != nil {
			fmt.Printf("FAIL config readable: %v\n", err)
			hasError = true
		} else if len(cfg.Children) == 0 {
			fmt.Println("FAIL config: no children registered")
			hasError = true
		} else {
			fmt.Printf("ok   config: %d children, %d activities\n", len(cfg.Children), len(cfg.Tasks))
		}

		events, err := ctx.Store.Events()
		if err != nil {
			fmt.Printf("FAIL ledger readable: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("ok   ledger: %d rows\n", len(events))
		}
	}

	if err := checkDataWritable(ctx.Store.DataPath()); err != nil {
		fmt.Printf("FAIL data path writable: %v\n", err)
		hasError = true
	} else {
		fmt.Println("ok   data path writable")
	}

	if others, err := otherPointbookProcesses(); err != nil {
		fmt.Printf("warn process check unavailable: %v\n", err)
	} else if len(others) > 0 {
		fmt.Printf("warn %d other pointbook process(es) running (pids %v); concurrent sessions overwrite each other\n", len(others), others)
	} else {
		fmt.Println("ok   no other pointbook process")
	}

	if err := checkClock(); err != nil {
		fmt.Printf("FAIL clock: %v\n", err)
		hasError = true
	} else {
		fmt.Println("ok   clock")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkDataWritable(path string) error {
	dir := path
	if filepath.Ext(path) == ".db" {
		dir = filepath.Dir(path)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0600); err != nil {
		return err
	}
	return os.Remove(probe)
}

func otherPointbookProcesses() ([]int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, err
	}
	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == "pointbook" {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reports %s, ledger dates would sort wrong", now.Format("2006-01-02"))
	}
	return nil
}
