package goosu

import (
	"errors"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
)

var songDir = filepath.Join("Songs", "129891 xi - FREEDOM DiVE")

func TestFromRecord(t *testing.T) {
	b, err := FromRecord(mustRead(t, freedomDive), songDir)
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}
	if b.ID != 129891 {
		t.Errorf("ID = %d", b.ID)
	}
	if b.Artist != "xi" || b.Title != "FREEDOM DiVE" {
		t.Errorf("display = %q - %q", b.Artist, b.Title)
	}
	if b.ArtistRomanized != "xi" || b.TitleRomanized != "Freedom Dive" {
		t.Errorf("romanized = %q - %q", b.ArtistRomanized, b.TitleRomanized)
	}
	if !reflect.DeepEqual(b.Tags, []string{"parousia", "onosakihito"}) || b.TagsString != "parousia onosakihito" {
		t.Errorf("Tags = %q, TagsString = %q", b.Tags, b.TagsString)
	}
	if b.Source != "BMS" || b.Creator != "Nakagawa-Kanon" {
		t.Errorf("Source, Creator = %q, %q", b.Source, b.Creator)
	}
	wantVideo := &Video{Name: "op.avi", Offset: 1500, File: filepath.Join(songDir, "op.avi")}
	if !reflect.DeepEqual(b.Video, wantVideo) {
		t.Errorf("Video = %+v, want %+v", b.Video, wantVideo)
	}
	if b.SongFile != filepath.Join(songDir, "audio.mp3") {
		t.Errorf("SongFile = %q", b.SongFile)
	}
	if b.BackgroundFile != filepath.Join(songDir, "bg.jpg") {
		t.Errorf("BackgroundFile = %q", b.BackgroundFile)
	}
	if b.String() != "xi - Freedom Dive" {
		t.Errorf("String() = %q", b.String())
	}
}

func TestFromRecordDefaults(t *testing.T) {
	b, err := FromRecord(Record{KeyAudioFilename: "a.mp3", KeyBackground: DefaultBackground}, "plain")
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}
	if b.ArtistRomanized != UnknownArtist || b.TitleRomanized != UnknownTitle {
		t.Errorf("romanized = %q - %q", b.ArtistRomanized, b.TitleRomanized)
	}
	if b.Artist != UnknownArtist || b.Title != UnknownTitle {
		t.Errorf("display = %q - %q", b.Artist, b.Title)
	}
	if b.Source != None || b.Creator != None {
		t.Errorf("Source, Creator = %q, %q", b.Source, b.Creator)
	}
	if b.Tags == nil || len(b.Tags) != 0 || b.TagsString != "" {
		t.Errorf("Tags = %#v, TagsString = %q", b.Tags, b.TagsString)
	}
	if b.Video != nil {
		t.Errorf("Video = %+v, want nil", b.Video)
	}
	if b.ID != 0 {
		t.Errorf("ID = %d, want 0", b.ID)
	}
	if b.BackgroundFile != filepath.Join("plain", DefaultBackground) {
		t.Errorf("BackgroundFile = %q", b.BackgroundFile)
	}
}

func TestFromRecordPartialUnicode(t *testing.T) {
	tests := []struct {
		name   string
		record Record
	}{
		{"artist only", Record{KeyArtistUnicode: "アーティスト"}},
		{"title only", Record{KeyTitleUnicode: "タイトル"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{KeyArtist: "Artist", KeyTitle: "Title", KeyAudioFilename: "a.mp3", KeyBackground: "bg.png"}
			for k, v := range tt.record {
				r[k] = v
			}
			b, err := FromRecord(r, "dir")
			if err != nil {
				t.Fatalf("FromRecord: %v", err)
			}
			if b.Artist != "Artist" || b.Title != "Title" {
				t.Fatalf("display = %q - %q, want romanized values", b.Artist, b.Title)
			}
		})
	}
}

func TestFromRecordID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		dir  string
		want int
	}{
		{"field", "75", "1 a - b", 75},
		{"bad field", "x75", "1 a - b", 0},
		{"directory", "", "123 a - b", 123},
		{"directory only number", "", "456", 456},
		{"bad directory", "", "a - b", 0},
		{"negative field", "-1", "9 a", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{KeyAudioFilename: "a.mp3", KeyBackground: "bg.png"}
			if tt.id != "" {
				r[KeyBeatmapID] = tt.id
			}
			b, err := FromRecord(r, filepath.Join("Songs", tt.dir))
			if err != nil {
				t.Fatalf("FromRecord: %v", err)
			}
			if b.ID != tt.want {
				t.Fatalf("ID = %d, want %d", b.ID, tt.want)
			}
		})
	}
}

func TestFromRecordBadVideoOffset(t *testing.T) {
	r := Record{KeyVideo: "op.avi", KeyVideoOffset: "soon", KeyAudioFilename: "a.mp3", KeyBackground: "bg.png"}
	_, err := FromRecord(r, "dir")
	var fe *FormatError
	if !errors.As(err, &fe) || fe.Field != KeyVideoOffset {
		t.Fatalf("err = %v, want FormatError on VideoOffset", err)
	}
	var ne *strconv.NumError
	if !errors.As(err, &ne) {
		t.Fatalf("err = %v, want a wrapped *strconv.NumError", err)
	}
}

func TestFromRecordMissingRequired(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		field  string
	}{
		{"audio", Record{KeyBackground: "bg.png"}, KeyAudioFilename},
		{"background", Record{KeyAudioFilename: "a.mp3"}, KeyBackground},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRecord(tt.record, "dir")
			var fe *FormatError
			if !errors.As(err, &fe) || fe.Field != tt.field || !errors.Is(err, ErrMissingField) {
				t.Fatalf("err = %v, want missing %s", err, tt.field)
			}
		})
	}
}

func beatmapOf(t *testing.T, artist, title, creator string) Beatmap {
	t.Helper()
	b, err := FromRecord(Record{
		KeyArtist:        artist,
		KeyTitle:         title,
		KeyCreator:       creator,
		KeyAudioFilename: "a.mp3",
		KeyBackground:    "bg.png",
	}, "dir")
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}
	return b
}

func TestBeatmapEqual(t *testing.T) {
	a := beatmapOf(t, "A", "Song", "mapper1")
	b := beatmapOf(t, "A", "Song", "mapper2")
	if !a.Equal(b) || a.Compare(b) != 0 {
		t.Fatalf("maps differing only in Creator: Equal = %v, Compare = %d", a.Equal(b), a.Compare(b))
	}
	c := beatmapOf(t, "A", "Other", "mapper1")
	if a.Equal(c) {
		t.Fatal("maps with different titles are equal")
	}
}

func TestBeatmapCompare(t *testing.T) {
	tests := []struct {
		a, b Beatmap
		want int
	}{
		{beatmapOf(t, "A", "Song", ""), beatmapOf(t, "B", "Song", ""), -1},
		{beatmapOf(t, "B", "Song", ""), beatmapOf(t, "A", "Song", ""), 1},
		{beatmapOf(t, "A", "x", ""), beatmapOf(t, "A", "y", ""), -1},
		{beatmapOf(t, "B", "a", ""), beatmapOf(t, "A", "z", ""), 1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v vs %v = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSortBeatmaps(t *testing.T) {
	beatmaps := []Beatmap{
		beatmapOf(t, "B", "a", "1"),
		beatmapOf(t, "A", "b", "2"),
		beatmapOf(t, "A", "a", "3"),
		beatmapOf(t, "A", "a", "4"),
	}
	SortBeatmaps(beatmaps)
	var got []string
	for _, b := range beatmaps {
		got = append(got, b.String()+"/"+b.Creator)
	}
	want := []string{"A - a/3", "A - a/4", "A - b/2", "B - a/1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sorted = %q, want %q", got, want)
	}
}

// "Source:" and "Tags:" without values are present but empty, unlike a
// missing key which takes the default.
func TestFromRecordEmptyValues(t *testing.T) {
	record := mustRead(t, "[General]\nAudioFilename: a.mp3\n[Metadata]\nSource:\nTags:\n")
	b, err := FromRecord(record, "dir")
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}
	if b.Source != "" {
		t.Errorf("Source = %q, want empty", b.Source)
	}
	if b.Creator != None {
		t.Errorf("Creator = %q, want %q", b.Creator, None)
	}
	if b.Tags == nil || len(b.Tags) != 0 || b.TagsString != "" {
		t.Errorf("Tags = %#v, TagsString = %q", b.Tags, b.TagsString)
	}
}

func TestFromRecordCopiesRecord(t *testing.T) {
	record := Record{KeyArtist: "A", KeyTitle: "T", KeyAudioFilename: "a.mp3", KeyBackground: "bg.png"}
	b, err := FromRecord(record, "dir")
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}
	record[KeyArtist] = "Z"
	if b.Record[KeyArtist] != "A" || b.ArtistRomanized != "A" {
		t.Fatalf("Record[Artist] = %q, ArtistRomanized = %q; want both A", b.Record[KeyArtist], b.ArtistRomanized)
	}
}
