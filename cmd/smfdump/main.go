package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Garik-/smf/pkg/midi"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	streamFlag bool
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:          "smfdump <file.mid>",
	Short:        "Print the header, tracks and events of a Standard MIDI File",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVarP(&streamFlag, "stream", "s", false, "Decode event by event instead of loading the whole file")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	if debugFlag {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer l.Sync()
		midi.SetLogger(l)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if fi, err := f.Stat(); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], humanize.Bytes(uint64(fi.Size())))
	}

	if streamFlag {
		return dumpStream(cmd.OutOrStdout(), f)
	}
	return dump(cmd.OutOrStdout(), f)
}

func printHeader(w io.Writer, h midi.Header) {
	division := fmt.Sprintf("%d ticks per quarter note", h.TicksPerQuarterNote)
	if h.TimeFormat() == midi.TimeCodeTF {
		division = fmt.Sprintf("SMPTE division %#04x", h.TicksPerQuarterNote)
	}
	fmt.Fprintf(w, "format %d, %d track(s), %s\n", h.FileType, h.TrackCount, division)
}

func printEvent(w io.Writer, abs int64, ev midi.TimedEvent) {
	fmt.Fprintf(w, "  %8d (+%d) %s\n", abs, ev.Delta, ev.Message)
}

func dump(w io.Writer, r io.Reader) error {
	seq, err := midi.ReadSequence(r)
	if err != nil {
		return err
	}

	printHeader(w, seq.Header)
	notes := 0
	for i, track := range seq.Tracks() {
		fmt.Fprintf(w, "track %d: %d events, declared %s\n", i, len(track.Events()), humanize.Bytes(uint64(track.DeclaredSize)))
		var abs int64
		for _, ev := range track.Events() {
			abs += int64(ev.Delta)
			printEvent(w, abs, ev)
			if cv, ok := ev.Message.(midi.ChannelVoice); ok && cv.Family == midi.NoteOn {
				notes++
			}
		}
	}
	for _, warning := range seq.Warnings() {
		fmt.Fprintf(w, "warning: %v\n", warning)
	}
	fmt.Fprintf(w, "notes: %d\n", notes)
	return nil
}

func dumpStream(w io.Writer, r io.Reader) error {
	s := midi.NewScanner(r)
	h, err := s.Header()
	if err != nil {
		return err
	}
	printHeader(w, h)

	track := -1
	var abs int64
	for s.Scan() {
		if s.Track() != track {
			track = s.Track()
			abs = 0
			fmt.Fprintf(w, "track %d: declared %s\n", track, humanize.Bytes(uint64(s.DeclaredSize())))
		}
		ev := s.Event()
		abs += int64(ev.Delta)
		printEvent(w, abs, ev)
	}
	return s.Err()
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
