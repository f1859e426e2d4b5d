package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/Garik-/smf/internal/velocity"
	"github.com/Garik-/smf/pkg/midi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	databaseFlag string
	inFlag       string
	outFlag      string
	minFlag      int
	maxFlag      int
	seedFlag     int64
	debugFlag    bool
)

var log = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:          "humanize",
	Short:        "Rewrite note velocities of a MIDI file from a velocity database",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&databaseFlag, "database", "d", "", "The path to the database json file (required)")
	rootCmd.Flags().StringVarP(&inFlag, "input", "i", "", "Input midi file (required)")
	rootCmd.Flags().StringVarP(&outFlag, "output", "o", "", "Output midi file (required)")
	rootCmd.Flags().IntVar(&minFlag, "min", 0, "Min velocity")
	rootCmd.Flags().IntVar(&maxFlag, "max", 128, "Max velocity")
	rootCmd.Flags().Int64Var(&seedFlag, "seed", 0, "Random seed (default: current time)")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	for _, name := range []string{"database", "input", "output"} {
		_ = rootCmd.MarkFlagRequired(name)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if minFlag >= maxFlag {
		return fmt.Errorf("min velocity %d must be below max %d", minFlag, maxFlag)
	}

	if debugFlag {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer l.Sync()
		log = l
		midi.SetLogger(l)
		velocity.SetLogger(l)
	}

	data, err := velocity.Load(databaseFlag)
	if err != nil {
		return err
	}

	in, err := os.Open(inFlag)
	if err != nil {
		return err
	}
	defer in.Close()

	seq, err := midi.ReadSequence(in)
	if err != nil {
		return err
	}

	seed := seedFlag
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}
	h := &humanizer{
		data: data,
		rng:  rand.New(rand.NewSource(seed)),
		min:  minFlag,
		max:  maxFlag,
	}

	out, err := os.Create(outFlag)
	if err != nil {
		return err
	}

	if err := h.write(out, seq); err != nil {
		out.Close()
		return err
	}

	log.Debug("done", zap.Int("changed", h.changed), zap.Int64("seed", seed))
	return out.Close()
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
