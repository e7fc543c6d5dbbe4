package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yashubustudio/answerfinder/finder"
)

func TestQueryFromArgs(t *testing.T) {
	assert.Equal(t, "What is the capital of France?", queryFromArgs([]string{"What is\n the", "capital\tof  France?\n"}))
	assert.Equal(t, "", queryFromArgs([]string{"\n", " "}))
}

func TestRenderAnswer(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	var buf bytes.Buffer
	renderAnswer(&buf, finder.Answer{Answer: []string{"Paris", "Lyon"}, OriginalText: "q"})
	assert.Equal(t, "1. Paris\n2. Lyon\n", buf.String())

	buf.Reset()
	renderAnswer(&buf, finder.Answer{Answer: []string{}, OriginalText: "q"})
	assert.Equal(t, noAnswer+"\n", buf.String())
}

func TestRenderBest(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	var buf bytes.Buffer
	require.NoError(t, renderBest(&buf, "Paris", true, false))
	assert.Equal(t, "Paris\n", buf.String())

	buf.Reset()
	require.NoError(t, renderBest(&buf, "", false, false))
	assert.Equal(t, noAnswer+"\n", buf.String())

	buf.Reset()
	require.NoError(t, renderBest(&buf, "Paris", true, true))
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]interface{}{"found": true, "variant": "Paris"}, got)
}

func TestWriteJSONAnswerShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, finder.Answer{Answer: []string{"a<b"}, OriginalText: "x"}))
	assert.JSONEq(t, `{"answer":["a<b"],"originalText":"x"}`, buf.String())
	assert.Contains(t, buf.String(), "a<b")
}
