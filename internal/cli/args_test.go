package cli

import (
	"bytes"
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Args
	}{
		{name: "location only", args: []string{"London"}, want: Args{Location: "London", Days: DefaultDays}},
		{name: "long forecast", args: []string{"London", "--forecast"}, want: Args{Location: "London", Forecast: true, Days: DefaultDays}},
		{name: "short flags", args: []string{"-f", "-d", "3", "Paris"}, want: Args{Location: "Paris", Forecast: true, Days: 3}},
		{name: "interleaved", args: []string{"--days=2", "New York", "-f"}, want: Args{Location: "New York", Forecast: true, Days: 2}},
		{name: "coordinates", args: []string{"51.5,-0.12"}, want: Args{Location: "51.5,-0.12", Days: DefaultDays}},
		{name: "trimmed", args: []string{"  Oslo "}, want: Args{Location: "Oslo", Days: DefaultDays}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args, &bytes.Buffer{})
			require.NoError(t, err)
			require.Equal(t, tt.want, *got)
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no location", args: nil, wantErr: "location is required"},
		{name: "blank location", args: []string{"   "}, wantErr: "location is required"},
		{name: "two locations", args: []string{"London", "Paris"}, wantErr: "unexpected arguments: Paris"},
		{name: "zero days", args: []string{"London", "-d", "0"}, wantErr: "--days must be at least 1, got 0"},
		{name: "bad days", args: []string{"London", "--days", "many"}, wantErr: "invalid value"},
		{name: "unknown flag", args: []string{"--units", "metric", "London"}, wantErr: "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args, &bytes.Buffer{})
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseArgs_Help(t *testing.T) {
	var out bytes.Buffer

	_, err := ParseArgs([]string{"-h"}, &out)
	require.ErrorIs(t, err, flag.ErrHelp)
	require.Contains(t, out.String(), "Usage: weather <location>")
}
