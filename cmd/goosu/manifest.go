package main

import (
	"sort"

	"github.com/tidwall/sjson"

	"github.com/Shimi9999/goosu"
)

// buildManifest renders the scanned beatmap sets as JSON.
func buildManifest(sets []goosu.BeatmapSet) ([]byte, error) {
	out := []byte(`{"sets":[]}`)
	var err error
	for _, set := range sets {
		entry := []byte(`{"beatmaps":[],"skipped":[]}`)
		if entry, err = sjson.SetBytes(entry, "path", set.Path); err != nil {
			return nil, err
		}
		if entry, err = sjson.SetBytes(entry, "name", set.Name); err != nil {
			return nil, err
		}
		for _, b := range set.Beatmaps {
			raw, err := beatmapJSON(b)
			if err != nil {
				return nil, err
			}
			if entry, err = sjson.SetRawBytes(entry, "beatmaps.-1", raw); err != nil {
				return nil, err
			}
		}
		files := make([]string, 0, len(set.Skipped))
		for file := range set.Skipped {
			files = append(files, file)
		}
		sort.Strings(files)
		for _, file := range files {
			skipped, _ := sjson.SetBytes([]byte(`{}`), "file", file)
			if skipped, err = sjson.SetBytes(skipped, "error", set.Skipped[file].Error()); err != nil {
				return nil, err
			}
			if entry, err = sjson.SetRawBytes(entry, "skipped.-1", skipped); err != nil {
				return nil, err
			}
		}
		if out, err = sjson.SetRawBytes(out, "sets.-1", entry); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func beatmapJSON(b goosu.Beatmap) ([]byte, error) {
	fields := []struct {
		path  string
		value interface{}
	}{
		{"id", b.ID},
		{"path", b.Path},
		{"md5", b.Md5},
		{"artist", b.Artist},
		{"title", b.Title},
		{"artistRomanized", b.ArtistRomanized},
		{"titleRomanized", b.TitleRomanized},
		{"creator", b.Creator},
		{"source", b.Source},
		{"version", b.Version},
		{"tags", b.Tags},
		{"song", b.SongFile},
		{"background", b.BackgroundFile},
	}
	out := []byte(`{}`)
	var err error
	for _, f := range fields {
		if out, err = sjson.SetBytes(out, f.path, f.value); err != nil {
			return nil, err
		}
	}
	if b.Video != nil {
		if out, err = sjson.SetBytes(out, "video.file", b.Video.File); err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, "video.offset", b.Video.Offset); err != nil {
			return nil, err
		}
	}
	return out, nil
}
