// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/officemd/internal/convert"
	"github.com/pdiddy/officemd/internal/ledger"
	"github.com/pdiddy/officemd/internal/ooxml/ooxmltest"
	"github.com/pdiddy/officemd/internal/pages"
	"github.com/pdiddy/officemd/internal/slides"
	"github.com/pdiddy/officemd/pkg/types"
)

func TestPipeline_DocxBatchWithLedger(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	body := ooxmltest.Para("Heading1", "Intro") + ooxmltest.PageBreakPara("Second page")
	ooxmltest.WriteZip(t, in, "report.docx", ooxmltest.DocxParts(body, ooxmltest.HeadingStyles))
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.docx"), []byte("not a zip"), 0o644))

	store, err := ledger.Open(types.LedgerConfig{Path: filepath.Join(t.TempDir(), "ledger.db")})
	require.NoError(t, err)
	defer store.Close()

	sources, err := convert.DiscoverSources(in, "docx")
	require.NoError(t, err)
	require.Len(t, sources, 2)

	conv := &pages.Converter{OutputDir: out}
	opts := convert.Options{Ledger: store, Incremental: true}
	ctx := context.Background()

	var log bytes.Buffer
	first, err := convert.ConvertBatch(ctx, conv, sources, &log, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Converted)
	assert.Equal(t, 1, first.Skipped)
	assert.Contains(t, log.String(), "skipped: broken.docx (not a valid DOCX file)\n")
	assert.FileExists(t, filepath.Join(out, "report_page_1.md"))
	assert.FileExists(t, filepath.Join(out, "report_page_2.md"))

	log.Reset()
	second, err := convert.ConvertBatch(ctx, conv, sources, &log, opts)
	require.NoError(t, err)
	assert.Zero(t, second.Converted)
	assert.Equal(t, 2, second.Skipped)
	assert.Contains(t, log.String(), "skipped: report.docx (unchanged)\n")

	// Touching the file makes it convert again.
	later := time.Now().Add(time.Hour)
	report := filepath.Join(in, "report.docx")
	require.NoError(t, os.Chtimes(report, later, later))
	sources, err = convert.DiscoverSources(in, "docx")
	require.NoError(t, err)

	log.Reset()
	third, err := convert.ConvertBatch(ctx, conv, sources, &log, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, third.Converted)

	history, err := store.History(ctx, ledger.HistoryOptions{Path: report})
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, types.ConversionDone, history[0].Status)
	assert.Equal(t, types.ConversionSkipped, history[1].Status)
	assert.Equal(t, 2, history[2].Outputs)
}

func TestPipeline_PptxAssetsReachLedger(t *testing.T) {
	in := t.TempDir()
	deck := ooxmltest.Deck{
		Slides: []ooxmltest.DeckSlide{{
			Shapes: ooxmltest.TextShape(2, "Title", `type="title"`, "Hello") + ooxmltest.Picture(3, "rIdI"),
			Rels:   []ooxmltest.Rel{{ID: "rIdI", Type: ooxmltest.RelTypeImage, Target: "../media/image1.jpeg"}},
		}},
		Extra: map[string]string{"ppt/media/image1.jpeg": "JPEG"},
	}
	src := ooxmltest.WriteZip(t, in, "hello.pptx", deck.Parts())

	store, err := ledger.Open(types.LedgerConfig{Path: filepath.Join(t.TempDir(), "ledger.db")})
	require.NoError(t, err)
	defer store.Close()

	conv := &slides.Converter{OutputDir: t.TempDir()}
	var log bytes.Buffer
	res, err := convert.ConvertSource(context.Background(), conv, convert.NewSource(src), &log, convert.Options{Ledger: store})
	require.NoError(t, err)
	assert.Equal(t, types.ConversionDone, res.Status)
	assert.Equal(t, "converted: hello.pptx (2 outputs)\n", log.String())

	history, err := store.History(context.Background(), ledger.HistoryOptions{})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, res.DocID, history[0].DocID)

	assets, err := store.Assets(context.Background(), history[0].ID)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, types.AssetImage, assets[0].Type)
	assert.Equal(t, filepath.Join(res.OutputDir, "images", "image_"+res.DocID+"_1_1.jpg"), assets[0].Path)
}
