package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pes18fan/spool/audio"
	"github.com/pes18fan/spool/ingest"
	"github.com/pes18fan/spool/player"
	"github.com/pes18fan/spool/playlist"
)

type Params struct {
	Watch    string `short:"w" optional:"true" help:"Folder to watch; audio files created in it are added"`
	Shuffle  bool   `short:"s" optional:"true" help:"Shuffle the playlist on start"`
	Autoplay bool   `short:"a" optional:"true" help:"Start playing the first track right away"`
	Notify   bool   `short:"n" optional:"true" help:"Show a desktop notification when the track changes"`
	Tags     bool   `optional:"true" help:"Name tracks after their artist and title tags" default:"true"`
	LogFile  string `optional:"true" help:"Write debug logs to this file (DEBUG=1 logs to debug.log)"`
}

func paramEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
	)
}

func main() {
	boa.CmdT[Params]{
		Use:   "spool [files or folders...]",
		Short: "A terminal playlist player",
		Long: `Play a playlist of local audio files in your terminal.

Files can be given as arguments, picked with o, dropped onto the terminal
window, or created in the folder passed to --watch.
Supported formats: mp3, flac, ogg and wav.`,
		Version:     version(),
		ParamEnrich: paramEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := run(params, args); err != nil {
				fmt.Fprintf(os.Stderr, "spool: %v\n", err)
				os.Exit(1)
			}
		},
	}.Run()
}

func setupLogging(params *Params) (io.Closer, error) {
	path := params.LogFile
	if path == "" && len(os.Getenv("DEBUG")) > 0 {
		path = "debug.log"
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := tea.LogToFile(path, "debug")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func run(params *Params, args []string) error {
	logFile, err := setupLogging(params)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if !audio.Available {
		log.Println("built without cgo, playback will be silent")
	}

	spk := audio.New()
	defer spk.Close()

	ctrl := player.NewController(playlist.New(), spk)
	opts := ingest.Options{ReadTags: params.Tags}

	items, itemsErr := ingest.Items(args, opts)
	if itemsErr != nil {
		log.Println("failed to add some files:", itemsErr)
	}
	ctrl.Append(items...)
	if params.Shuffle {
		ctrl.ToggleShuffle()
	}

	var watcher *ingest.Watcher
	if params.Watch != "" {
		watcher, err = ingest.Watch(params.Watch)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	m := newModel(ctrl, spk, watcher, opts, params.Notify)
	if itemsErr != nil {
		m.notice = itemsErr.Error()
	}
	if params.Autoplay && len(items) > 0 {
		// the notification command is dropped here; the program is not running yet
		m.apply(player.PlayRequested{})
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	log.Println("set up tea program")

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tea program got error: %w", err)
	}
	return nil
}

// version is the module version stamped by go install, or "(devel)" for
// local builds.
func version() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}
