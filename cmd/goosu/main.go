package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Shimi9999/goosu"
	"github.com/Shimi9999/goosu/osuenv"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errUsage = errors.New("usage")

type command func(cfg *Config, args []string, stdout io.Writer) error

var commands = map[string]command{
	"parse":   cmdParse,
	"info":    cmdInfo,
	"scan":    cmdScan,
	"thumb":   cmdThumb,
	"locate":  cmdLocate,
	"running": cmdRunning,
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("goosu", flag.ContinueOnError)
	configPath := fs.String("config", "goosu.ini", "config file")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: goosu [-config file] <parse|info|scan|thumb|locate|running> [args...]\n")
		return exitUsage
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", fs.Arg(0))
		return exitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Printf("config_error err=%v", err)
		return exitFailure
	}
	if err := cmd(cfg, fs.Args()[1:], stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			return exitUsage
		}
		log.Printf("%s_error err=%v", fs.Arg(0), err)
		return exitFailure
	}
	return exitOK
}

func cmdParse(_ *Config, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: goosu parse <file>", errUsage)
	}
	record, err := goosu.LoadRecord(args[0])
	if err != nil {
		return err
	}
	for _, key := range record.Keys() {
		fmt.Fprintf(stdout, "%s: %s\n", key, record[key])
	}
	return nil
}

func cmdInfo(_ *Config, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: goosu info <file>", errUsage)
	}
	b, err := goosu.LoadBeatmap(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s [%s]\n", b, b.Version)
	fmt.Fprintf(stdout, "ID:         %d\n", b.ID)
	fmt.Fprintf(stdout, "Artist:     %s\n", b.Artist)
	fmt.Fprintf(stdout, "Title:      %s\n", b.Title)
	fmt.Fprintf(stdout, "Creator:    %s\n", b.Creator)
	fmt.Fprintf(stdout, "Source:     %s\n", b.Source)
	fmt.Fprintf(stdout, "Tags:       %s\n", b.TagsString)
	fmt.Fprintf(stdout, "Song:       %s\n", b.SongFile)
	fmt.Fprintf(stdout, "Background: %s\n", b.BackgroundFile)
	if b.Video != nil {
		fmt.Fprintf(stdout, "Video:      %s (%d ms)\n", b.Video.File, b.Video.Offset)
	}
	fmt.Fprintf(stdout, "MD5:        %s\n", b.Md5)
	return nil
}

func cmdScan(cfg *Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	outPath := fs.String("o", "", "write the manifest to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: goosu scan [-o file] [songs dir]", errUsage)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: goosu scan [-o file] [songs dir]", errUsage)
	}

	songsDir := fs.Arg(0)
	if songsDir == "" {
		var err error
		if songsDir, err = defaultSongsDir(cfg); err != nil {
			return err
		}
	}
	log.Printf("scan_start dir=%s workers=%d", songsDir, cfg.Scan.Workers)
	sets, err := goosu.ScanSongs(songsDir, cfg.Scan.Workers)
	if err != nil {
		return err
	}
	beatmaps := 0
	for _, set := range sets {
		beatmaps += len(set.Beatmaps)
		for file, loadErr := range set.Skipped {
			log.Printf("skipped set=%s file=%s err=%v", set.Path, file, loadErr)
		}
	}

	out, err := buildManifest(sets)
	if err != nil {
		return fmt.Errorf("manifest error: %w", err)
	}
	if *outPath == "" {
		_, err = fmt.Fprintln(stdout, string(out))
	} else {
		err = os.WriteFile(*outPath, out, 0o644)
	}
	if err != nil {
		return err
	}
	log.Printf("scan_done sets=%d beatmaps=%d", len(sets), beatmaps)
	return nil
}

func defaultSongsDir(cfg *Config) (string, error) {
	if cfg.Paths.Songs != "" {
		return cfg.Paths.Songs, nil
	}
	install := cfg.Paths.Install
	if install == "" {
		var err error
		if install, err = osuenv.FindInstall(osuenv.DefaultInstallPaths); err != nil {
			return "", err
		}
	}
	return osuenv.SongsDir(install), nil
}

func cmdThumb(cfg *Config, args []string, _ io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: goosu thumb <file> <out>", errUsage)
	}
	b, err := goosu.LoadBeatmap(args[0])
	if err != nil {
		return err
	}
	data, contentType, err := goosu.Thumbnail(b, cfg.Scan.ThumbnailSize)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		return err
	}
	log.Printf("thumbnail_written path=%s type=%s bytes=%d", args[1], contentType, len(data))
	return nil
}

func cmdLocate(cfg *Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("locate", flag.ContinueOnError)
	noDialog := fs.Bool("nodialog", false, "never ask with a folder dialog")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return fmt.Errorf("%w: goosu locate [-nodialog]", errUsage)
	}

	if cfg.Paths.Install != "" && osuenv.IsInstallDir(cfg.Paths.Install) {
		fmt.Fprintln(stdout, cfg.Paths.Install)
		return nil
	}
	var picker osuenv.DirectoryPicker
	if !*noDialog {
		picker = newDirectoryPicker()
	}
	dir, err := osuenv.Locate(osuenv.DefaultInstallPaths, picker)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, dir)
	return nil
}

func cmdRunning(_ *Config, args []string, stdout io.Writer) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: goosu running", errUsage)
	}
	running, err := osuenv.NewCommandChecker().Running(context.Background())
	if err != nil {
		return err
	}
	if running {
		fmt.Fprintln(stdout, "running")
	} else {
		fmt.Fprintln(stdout, "not running")
	}
	return nil
}
