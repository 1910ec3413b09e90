package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageFullText(t *testing.T) {
	p := NewPage(3, []TextElement{
		{Category: "Title", Content: "РЕЗУЛЬТАТЫ ОСМОТРА"},
		{Category: "NarrativeText", Content: "Выявлены дефекты отделки."},
	})
	assert.Equal(t, 3, p.PageNumber)
	assert.Equal(t, "РЕЗУЛЬТАТЫ ОСМОТРА Выявлены дефекты отделки.", p.FullText)
	assert.False(t, p.IsEmpty())
}

func TestPageIsEmpty(t *testing.T) {
	assert.True(t, NewPage(1, nil).IsEmpty())
	assert.True(t, Page{PageNumber: 1, FullText: "   "}.IsEmpty())
	assert.False(t, Page{PageNumber: 1, FullText: "текст"}.IsEmpty())
}

func TestPageByNumber(t *testing.T) {
	doc := &Document{Pages: []Page{
		{PageNumber: 1, FullText: "a"},
		{PageNumber: 2, FullText: "b"},
	}}
	p, ok := doc.PageByNumber(2)
	require.True(t, ok)
	assert.Equal(t, "b", p.FullText)

	_, ok = doc.PageByNumber(5)
	assert.False(t, ok)
}

func TestCombinedTextTagsPages(t *testing.T) {
	doc := &Document{
		Filename: "report.pdf",
		Pages: []Page{
			{PageNumber: 1, FullText: "первая"},
			{PageNumber: 2, FullText: "вторая"},
			{PageNumber: 3, FullText: "третья"},
		},
	}
	got := doc.CombinedText([]int{1, 3})
	assert.Equal(t, "=== Страница 1 ===\nпервая\n\n=== Страница 3 ===\nтретья", got)
}

func TestCombinedTextSkipsUnknownPages(t *testing.T) {
	doc := &Document{Pages: []Page{{PageNumber: 1, FullText: "текст"}}}
	got := doc.CombinedText([]int{1, 9})
	assert.Equal(t, "=== Страница 1 ===\nтекст", got)
}

func TestAllTextRendersElementsPerLine(t *testing.T) {
	doc := &Document{Pages: []Page{
		{PageNumber: 1, Elements: []TextElement{{Content: "a"}, {Content: "b"}}},
		{PageNumber: 2, Elements: []TextElement{{Content: "c"}}},
	}}
	assert.Equal(t, "=== Страница 1 ===\na\nb\n\n=== Страница 2 ===\nc", doc.AllText())
}

func TestDefectRecordValidate(t *testing.T) {
	valid := DefectRecord{
		SourceText: "трещины на плитке",
		Room:       "Санузел",
		Location:   "Пол",
		Defect:     "floor_tile_cracks_chips",
		WorkType:   "Плиточные работы",
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*DefectRecord)
	}{
		{"empty source", func(r *DefectRecord) { r.SourceText = "" }},
		{"unknown room", func(r *DefectRecord) { r.Room = "Кухня" }},
		{"unknown location", func(r *DefectRecord) { r.Location = "Фасад" }},
		{"unknown defect", func(r *DefectRecord) { r.Defect = "made_up_defect" }},
		{"unknown work type", func(r *DefectRecord) { r.WorkType = "Кровельные работы" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
}
