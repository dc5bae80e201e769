package goosu

import (
	"cmp"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Record keys read or written by this package.
const (
	KeyFileFormat    = "FileFormat"
	KeyBackground    = "Background"
	KeyVideo         = "Video"
	KeyVideoOffset   = "VideoOffset"
	KeyBeatmapID     = "BeatmapID"
	KeyArtist        = "Artist"
	KeyArtistUnicode = "ArtistUnicode"
	KeyTitle         = "Title"
	KeyTitleUnicode  = "TitleUnicode"
	KeyTags          = "Tags"
	KeySource        = "Source"
	KeyCreator       = "Creator"
	KeyVersion       = "Version"
	KeyAudioFilename = "AudioFilename"
)

const (
	UnknownArtist = "<unknown artist>"
	UnknownTitle  = "<unknown title>"
	None          = "<none>"
)

// Record is the flat key-value content of one .osu file.
type Record map[string]string

func (r Record) Get(key string) (string, bool) {
	v, ok := r[key]
	return v, ok
}

// Keys returns the record's keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type Video struct {
	Name   string
	Offset int // ms
	File   string
}

type Beatmap struct {
	Path            string // .osu file, set by LoadBeatmap
	Dir             string
	ID              int
	Artist          string
	Title           string
	ArtistRomanized string
	TitleRomanized  string
	Tags            []string
	TagsString      string
	Source          string
	Creator         string
	Version         string
	FileFormat      int
	Video           *Video // nil when the map declares no video
	SongFile        string
	BackgroundFile  string
	Md5             string
	Record          Record
}

func NewBeatmap() Beatmap {
	var b Beatmap
	b.ArtistRomanized = UnknownArtist
	b.TitleRomanized = UnknownTitle
	b.Source = None
	b.Creator = None
	b.Tags = make([]string, 0)
	return b
}

// optionalFields keep their NewBeatmap default when the key is absent.
var optionalFields = []struct {
	key   string
	field func(*Beatmap) *string
}{
	{KeyArtist, func(b *Beatmap) *string { return &b.ArtistRomanized }},
	{KeyTitle, func(b *Beatmap) *string { return &b.TitleRomanized }},
	{KeySource, func(b *Beatmap) *string { return &b.Source }},
	{KeyCreator, func(b *Beatmap) *string { return &b.Creator }},
	{KeyTags, func(b *Beatmap) *string { return &b.TagsString }},
}

// FromRecord derives a Beatmap from record. dir is the directory holding the
// .osu file; song, background and video files are resolved against it.
func FromRecord(record Record, dir string) (Beatmap, error) {
	b := NewBeatmap()
	b.Dir = dir
	b.Record = maps.Clone(record)
	b.ID = beatmapID(record, dir)
	b.FileFormat, _ = strconv.Atoi(strings.TrimSpace(record[KeyFileFormat]))

	for _, f := range optionalFields {
		if v, ok := record[f.key]; ok {
			*f.field(&b) = v
		}
	}
	if b.TagsString != "" {
		b.Tags = strings.Split(b.TagsString, " ")
	}

	// 片方だけのunicode表記は使わない
	artistUnicode, okArtist := record[KeyArtistUnicode]
	titleUnicode, okTitle := record[KeyTitleUnicode]
	if okArtist && okTitle {
		b.Artist, b.Title = artistUnicode, titleUnicode
	} else {
		b.Artist, b.Title = b.ArtistRomanized, b.TitleRomanized
	}

	if name, ok := record[KeyVideo]; ok {
		raw := record[KeyVideoOffset]
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return Beatmap{}, &FormatError{Field: KeyVideoOffset, Text: raw, Err: err}
		}
		b.Video = &Video{Name: name, Offset: offset, File: filepath.Join(dir, name)}
	}

	audio, ok := record[KeyAudioFilename]
	if !ok {
		return Beatmap{}, &FormatError{Field: KeyAudioFilename, Err: ErrMissingField}
	}
	b.SongFile = filepath.Join(dir, audio)

	background, ok := record[KeyBackground]
	if !ok {
		return Beatmap{}, &FormatError{Field: KeyBackground, Err: ErrMissingField}
	}
	b.BackgroundFile = filepath.Join(dir, background)

	return b, nil
}

// beatmapID never fails: a bad or missing id is 0.
func beatmapID(record Record, dir string) int {
	if v, ok := record[KeyBeatmapID]; ok {
		id, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return id
	}
	// "123456 Artist - Title"
	name := filepath.Base(dir)
	token, _, _ := strings.Cut(name, " ")
	id, err := strconv.Atoi(token)
	if err != nil {
		return 0
	}
	return id
}

// Compare orders beatmaps by romanized artist, then romanized title.
func (b Beatmap) Compare(other Beatmap) int {
	if c := cmp.Compare(b.ArtistRomanized, other.ArtistRomanized); c != 0 {
		return c
	}
	return cmp.Compare(b.TitleRomanized, other.TitleRomanized)
}

// Equal reports whether both beatmaps are of the same song. Difficulties of
// one song are equal to each other.
func (b Beatmap) Equal(other Beatmap) bool {
	return b.ArtistRomanized == other.ArtistRomanized && b.TitleRomanized == other.TitleRomanized
}

func (b Beatmap) String() string {
	return b.ArtistRomanized + " - " + b.TitleRomanized
}

func SortBeatmaps(beatmaps []Beatmap) {
	slices.SortStableFunc(beatmaps, Beatmap.Compare)
}

// HasBackground reports whether the background file exists on disk.
func (b Beatmap) HasBackground() bool {
	info, err := os.Stat(b.BackgroundFile)
	return err == nil && !info.IsDir()
}

type BeatmapSet struct {
	Path     string
	Name     string
	Beatmaps []Beatmap
	Skipped  map[string]error // file name -> load error
}

func NewBeatmapSet() BeatmapSet {
	var bs BeatmapSet
	bs.Beatmaps = make([]Beatmap, 0)
	bs.Skipped = make(map[string]error)
	return bs
}
