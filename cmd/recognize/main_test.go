package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Args(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"-kinds", "currency", "I paid $30", "nothing here"}, nil, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first struct {
		Culture string `json:"culture"`
		Results []struct {
			Text       string `json:"text"`
			Resolution struct {
				Value       string `json:"value"`
				ISOCurrency string `json:"isoCurrency"`
			} `json:"resolution"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "en-us", first.Culture)
	require.Len(t, first.Results, 1)
	assert.Equal(t, "$30", first.Results[0].Text)
	assert.Equal(t, "USD", first.Results[0].Resolution.ISOCurrency)
	assert.JSONEq(t, `{"culture":"en-us","results":[]}`, lines[1])
}

func TestRun_StdinPretty(t *testing.T) {
	var out, errOut bytes.Buffer
	in := strings.NewReader("tengo 25 años\n\nhola\n")
	code := run([]string{"-culture", "es-es", "-pretty"}, in, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())

	s := out.String()
	assert.Contains(t, s, "tengo 25 años\n")
	assert.Contains(t, s, "Age")
	assert.Contains(t, s, "25 Año")
	assert.Contains(t, s, "hola\n  (nothing found)")
}

func TestRun_BadFlags(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Equal(t, 2, run([]string{"-kinds", "speed"}, nil, &out, &errOut))
	assert.Contains(t, errOut.String(), "bad -kinds")

	assert.Equal(t, 2, run([]string{"-nope"}, nil, &out, &errOut))
	assert.Equal(t, 1, run([]string{"-culture", "xx-yy", "5 km"}, nil, &out, &errOut))
}
