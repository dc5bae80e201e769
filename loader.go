package goosu

import (
	"bufio"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	fileFormatPrefix  = "osu file format v"
	backgroundPrefix  = `0,0,"`
	DefaultBackground = "nonexistent.png"
)

type section int

const (
	sectionUnknown section = iota
	sectionGeneral
	sectionEditor
	sectionMetadata
	sectionDifficulty
	sectionEvents
	sectionTimingPoints
	sectionColours
	sectionHitObjects
)

var sectionNames = map[string]section{
	"GENERAL":      sectionGeneral,
	"EDITOR":       sectionEditor,
	"METADATA":     sectionMetadata,
	"DIFFICULTY":   sectionDifficulty,
	"EVENTS":       sectionEvents,
	"TIMINGPOINTS": sectionTimingPoints,
	"COLOURS":      sectionColours,
	"HITOBJECTS":   sectionHitObjects,
}

// LoadRecord reads the .osu file at path into a Record.
// Open and read faults are returned wrapped, never as *FormatError.
func LoadRecord(path string) (Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("osu file open error: %w", err)
	}
	defer file.Close()

	return ReadRecord(file)
}

// ReadRecord parses .osu text from r. Parsing is all-or-nothing: on any
// fault no partial record is returned.
func ReadRecord(r io.Reader) (Record, error) {
	const (
		initialBufSize = 10000
		maxBufSize     = 1000000
	)
	scanner := bufio.NewScanner(transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder())))
	buf := make([]byte, initialBufSize)
	scanner.Buffer(buf, maxBufSize)

	record := Record{}
	current := sectionUnknown
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line, err := decodeLine(raw)
		if err != nil {
			return nil, &FormatError{Line: lineNo, Text: raw, Err: err}
		}
		next, err := readLine(record, current, line)
		if err != nil {
			return nil, &FormatError{Line: lineNo, Text: line, Err: err}
		}
		current = next
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &FormatError{Line: lineNo + 1, Err: err}
		}
		return nil, fmt.Errorf("osu file scan error: %w", err)
	}

	if _, ok := record[KeyBackground]; !ok {
		record[KeyBackground] = DefaultBackground
	}
	return record, nil
}

// 古い譜面はUTF-8ではないことがあるのでWindows-1252として読む
func decodeLine(line string) (string, error) {
	if utf8.ValidString(line) {
		return line, nil
	}
	decoded, _, err := transform.String(charmap.Windows1252.NewDecoder(), line)
	if err != nil {
		return "", fmt.Errorf("Windows-1252 decode error: %w", err)
	}
	return decoded, nil
}

// readLine applies one line to record and returns the section that is
// current after it.
func readLine(record Record, current section, line string) (section, error) {
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "//") {
		return current, nil
	}
	if strings.HasPrefix(line, "[") {
		return parseSectionHeader(line)
	}

	switch current {
	case sectionUnknown:
		return current, readVersion(record, line)
	case sectionGeneral, sectionEditor, sectionMetadata, sectionDifficulty:
		readKeyValue(record, line)
	case sectionEvents:
		return current, readEvent(record, line)
	case sectionTimingPoints, sectionColours, sectionHitObjects:
		// not parsed
	}
	return current, nil
}

func parseSectionHeader(line string) (section, error) {
	line = strings.TrimRight(line, " \t")
	if len(line) < 2 || !strings.HasSuffix(line, "]") {
		return sectionUnknown, ErrMalformedHeader
	}
	name := line[1 : len(line)-1]
	s, ok := sectionNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return sectionUnknown, fmt.Errorf("%w %q", ErrUnknownSection, name)
	}
	return s, nil
}

func readVersion(record Record, line string) error {
	if len(line) < len(fileFormatPrefix) {
		return ErrShortVersionLine
	}
	record[KeyFileFormat] = line[len(fileFormatPrefix):]
	return nil
}

// Lines without a colon are skipped; some maps leave fields bare. "Key:"
// with nothing after the colon is kept as an empty value, so such a field
// counts as present and does not fall back to its Beatmap default.
func readKeyValue(record Record, line string) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}
	record[strings.TrimSpace(key)] = strings.TrimSpace(value)
}

func readEvent(record Record, line string) error {
	switch {
	case strings.HasPrefix(line, backgroundPrefix):
		rest := line[len(backgroundPrefix):]
		end := strings.IndexByte(rest, '"')
		if end < 0 {
			return fmt.Errorf("%w: unterminated background filename", ErrMalformedEvent)
		}
		record[KeyBackground] = rest[:end]
	case strings.HasPrefix(line, "1,") || strings.HasPrefix(line, "Video"):
		fields := strings.Split(line, ",")
		if len(fields) < 3 {
			return fmt.Errorf("%w: video needs an offset and a filename", ErrMalformedEvent)
		}
		record[KeyVideoOffset] = strings.TrimSpace(fields[1])
		record[KeyVideo] = strings.Trim(strings.TrimSpace(fields[2]), `"`)
	default:
		// TODO storyboard (Sprite, Animation and their commands)
	}
	return nil
}

// LoadBeatmap reads the .osu file at path and derives its Beatmap. The
// file's directory is the root for the song, background and video files.
func LoadBeatmap(path string) (beatmap Beatmap, err error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return beatmap, fmt.Errorf("osu file path error: %w", err)
	}
	record, err := LoadRecord(absPath)
	if err != nil {
		return beatmap, err
	}
	beatmap, err = FromRecord(record, filepath.Dir(absPath))
	if err != nil {
		return beatmap, err
	}
	beatmap.Path = absPath
	beatmap.Version = record[KeyVersion]
	if beatmap.Version == "" {
		beatmap.Version = VersionFromPath(absPath)
	}

	beatmap.Md5, err = getFileHash(absPath)
	if err != nil {
		return beatmap, fmt.Errorf("Get osu hash error: %w", err)
	}
	return beatmap, nil
}

func getFileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("File open error: %w", err)
	}
	defer file.Close()

	h := md5.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("File read error: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// LoadBeatmapSet loads every .osu file directly inside path. Files that
// fail to load are left out and recorded in Skipped.
func LoadBeatmapSet(path string) (BeatmapSet, error) {
	set := NewBeatmapSet()
	set.Path = path
	entries, err := os.ReadDir(path)
	if err != nil {
		return set, fmt.Errorf("beatmap set read error: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !IsOsuPath(e.Name()) {
			continue
		}
		beatmap, err := LoadBeatmap(filepath.Join(path, e.Name()))
		if err != nil {
			set.Skipped[e.Name()] = err
			continue
		}
		set.Beatmaps = append(set.Beatmaps, beatmap)
	}
	if len(set.Beatmaps) > 0 {
		set.Name = set.Beatmaps[0].String()
	}
	return set, nil
}

// FindBeatmapSets walks down from path and loads every directory that holds
// .osu files. Directories below a beatmap set are not searched.
func FindBeatmapSets(path string) ([]BeatmapSet, error) {
	sets := []BeatmapSet{}
	if err := findBeatmapSets(path, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

func findBeatmapSets(path string, sets *[]BeatmapSet) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("directory read error: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && IsOsuPath(e.Name()) {
			set, err := LoadBeatmapSet(path)
			if err != nil {
				return err
			}
			*sets = append(*sets, set)
			return nil
		}
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := findBeatmapSets(filepath.Join(path, e.Name()), sets); err != nil {
				return err
			}
		}
	}
	return nil
}

// ScanSongs loads each immediate sub-directory of songsDir as a beatmap set
// using at most workers goroutines (NumCPU when workers < 1). Directories
// without any .osu file are left out. Sets are returned in directory order.
func ScanSongs(songsDir string, workers int) ([]BeatmapSet, error) {
	entries, err := os.ReadDir(songsDir)
	if err != nil {
		return nil, fmt.Errorf("songs directory read error: %w", err)
	}
	dirNames := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dirNames = append(dirNames, e.Name())
		}
	}
	sort.Strings(dirNames)

	if workers < 1 {
		workers = runtime.NumCPU()
	}
	type setResult struct {
		set BeatmapSet
		err error
	}
	results := make([]setResult, len(dirNames))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, name := range dirNames {
		wg.Add(1)
		go func(i int, dir string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			set, err := LoadBeatmapSet(dir)
			results[i] = setResult{set: set, err: err}
		}(i, filepath.Join(songsDir, name))
	}
	wg.Wait()

	sets := make([]BeatmapSet, 0, len(results))
	for _, result := range results {
		if result.err != nil {
			return nil, result.err
		}
		if len(result.set.Beatmaps) == 0 && len(result.set.Skipped) == 0 {
			continue
		}
		sets = append(sets, result.set)
	}
	return sets, nil
}
