// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bibcheck/internal/store"
	"github.com/pdiddy/bibcheck/pkg/types"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name                string
		title, author, year string
		want                string
	}{
		{"typical", "Attention Is All You Need", "Ashish Vaswani and Noam Shazeer", "2017", "Vaswani2017AttentionIsAll"},
		{"stop word skipped", "The Art of War", "", "", "UnknownArtOf"},
		{"no title", "", "Jean-Luc Picard", "2020", "Picard2020Paper"},
		{"punctuation stripped", "Graph: A Review", "Doe, J.", "2019", "J2019GraphReview"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.title, tt.author, tt.year))
		})
	}
}

func TestMonth(t *testing.T) {
	assert.Equal(t, "dec", Month("Advances in neural information processing systems, December 2017"))
	assert.Equal(t, "jan", Month("Proc. Jan 2020"))
	assert.Equal(t, "may", Month("May 2021"))
	assert.Equal(t, "", Month("Nature"))
	assert.Equal(t, "", Month(""))
}

func TestIdentifiers(t *testing.T) {
	assert.Equal(t, "1810.04805", ArxivID("arXiv preprint arXiv:1810.04805"))
	assert.Equal(t, "2401.12345", ArxivID("https://arxiv.org/abs/2401.12345"))
	assert.Equal(t, "", ArxivID("Nature"))

	assert.Equal(t, "10.1145/3292500", DOI("https://doi.org/10.1145/3292500"))
	assert.Equal(t, "", DOI("https://example.org/paper"))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "attention-is-all-you-need", Slug("Attention Is All You Need"))
	assert.Equal(t, "dont-stop-pretraining-uber-alles", Slug("Don't Stop: Pretraining Über Alles!"))
	assert.Equal(t, "", Slug("  ?! "))
}

func TestConvertPreprint(t *testing.T) {
	p := store.Publication{
		Bib: map[string]any{
			"title":    "BERT: Pre-training of Deep Bidirectional Transformers",
			"author":   "Jacob Devlin and Ming-Wei Chang",
			"pub_year": "2018",
			"journal":  "arXiv preprint arXiv:1810.04805",
			"abstract": "We introduce BERT.",
		},
		PubURL: "https://arxiv.org/abs/1810.04805",
	}

	rec := Convert(p)
	assert.Equal(t, "Devlin2018BertPretrainingOf", rec.Key())
	assert.Equal(t, "article", rec.Type())
	assert.Equal(t, types.KindPreprint, rec.Kind())
	assert.Equal(t, []string{
		"title", "author", "year", "url", "journal", "volume",
		"bibtex_show", "abstract", "pdf", "preview", "arxiv",
	}, rec.Names())
	assert.Equal(t, "ArXiv", rec.Get("journal"))
	assert.Equal(t, "1810.04805", rec.Get("volume"))
	assert.Equal(t, "1810.04805", rec.Get("arxiv"))
	assert.Equal(t, "true", rec.Get("bibtex_show"))
	assert.Equal(t, "bert-pre-training-of-deep-bidirectional-transformers.pdf", rec.Get("pdf"))
	assert.Equal(t, "bert-pre-training-of-deep-bidirectional-transformers.png", rec.Get("preview"))
	assert.False(t, rec.Has("month"))
}

func TestConvertConference(t *testing.T) {
	p := store.Publication{
		Bib: map[string]any{
			"title":      "Attention Is All You Need",
			"author":     "Ashish Vaswani and Noam Shazeer",
			"pub_year":   "2017",
			"conference": "Advances in Neural Information Processing Systems",
			"citation":   "Advances in neural information processing systems 30, December 2017",
		},
		PubURL: "https://doi.org/10.5555/3295222",
	}

	rec := Convert(p)
	assert.Equal(t, "inproceedings", rec.Type())
	assert.Equal(t, types.KindConference, rec.Kind())
	assert.Equal(t, "Advances in Neural Information Processing Systems", rec.Get("booktitle"))
	assert.Equal(t, "10.5555/3295222", rec.Get("doi"))
	assert.Equal(t, "dec", rec.Get("month"))
	assert.False(t, rec.Has("journal"))
	assert.False(t, rec.Has("arxiv"))
}

func TestConvertJournalAndWorkshop(t *testing.T) {
	journal := Convert(store.Publication{Bib: map[string]any{
		"title":    "Deep learning",
		"author":   "Yann LeCun",
		"pub_year": float64(2015),
		"journal":  "Nature",
	}})
	assert.Equal(t, "article", journal.Type())
	assert.Equal(t, types.KindJournal, journal.Kind())
	assert.Equal(t, "Nature", journal.Get("journal"))
	assert.Equal(t, "2015", journal.Get("year"))
	assert.False(t, journal.Has("doi"))

	workshop := Convert(store.Publication{Bib: map[string]any{
		"title":    "Graph Learning Notes",
		"citation": "Workshop on Graph Learning",
	}})
	assert.Equal(t, "inproceedings", workshop.Type())
	assert.Equal(t, "Workshop on Graph Learning", workshop.Get("booktitle"))
	assert.Equal(t, "Unknown", workshop.Key()[:7])
}

func TestConvertAll(t *testing.T) {
	pubs := []store.Publication{
		{Bib: map[string]any{"title": "One"}},
		{Bib: map[string]any{"title": "Two"}},
	}
	recs := ConvertAll(pubs)
	require.Len(t, recs, 2)
	assert.Equal(t, "One", recs[0].Title())
	assert.Equal(t, "Two", recs[1].Title())
	assert.Empty(t, ConvertAll(nil))
}

func TestConvertAllUniqueKeys(t *testing.T) {
	pub := func(title string) store.Publication {
		return store.Publication{Bib: map[string]any{"title": title, "author": "Jane Doe", "pub_year": "2024"}}
	}
	recs := ConvertAll([]store.Publication{
		pub("Graph Neural Networks"),
		pub("Graph Neural Networks: A Survey"),
		pub("Graph Neural Networks for Code"),
	})
	require.Len(t, recs, 3)
	assert.Equal(t, "Doe2024GraphNeuralNetworks", recs[0].Key())
	assert.Equal(t, "Doe2024GraphNeuralNetworksb", recs[1].Key())
	assert.Equal(t, "Doe2024GraphNeuralNetworksc", recs[2].Key())
	assert.Equal(t, "Graph Neural Networks for Code", recs[2].Title())
}
