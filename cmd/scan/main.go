package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	maxGoroutines = 10
)

var (
	listFlag   string
	outputFlag string
	maxFlag    int
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "scan",
	Short: "Build a velocity database from a list of MIDI files",
	Long: `scan decodes every MIDI file named in a list and records the velocities
of their notes per note, message type and beat position.

  find . -type f -name "*.mid" > midi_list.txt
  scan -l midi_list.txt -o velocity.json`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&listFlag, "list", "l", "", "The path to the list of midi files (required)")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output database json file (default stdout)")
	rootCmd.Flags().IntVarP(&maxFlag, "parallel", "p", maxGoroutines, "Number of files processed in parallel, must be > 0")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	_ = rootCmd.MarkFlagRequired("list")
}

func run(cmd *cobra.Command, args []string) error {
	if maxFlag <= 0 {
		return fmt.Errorf("parallel must be > 0, was %d", maxFlag)
	}

	if debugFlag {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer l.Sync()
		enableDebugLogging(l)
	}

	f, err := os.Open(listFlag)
	if err != nil {
		return err
	}
	defer f.Close()

	m, st, err := newVelocityMap(cmd.Context(), readList(f), maxFlag)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outputFlag != "" {
		out, err = os.Create(outputFlag)
		if err != nil {
			return err
		}
		defer out.Close()
	}

	if err := m.Encode(out); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%d files (%s), %d tracks, %d notes\n",
		st.files, humanize.Bytes(uint64(st.bytes)), st.tracks, len(m))
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
