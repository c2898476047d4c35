package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/takak2166/sitedata/internal/config"
	"github.com/takak2166/sitedata/internal/errors"
	"github.com/takak2166/sitedata/internal/form"
)

const chaptersResponse = `{"data":{"chapters":{"items":[
	{"title":"Berlin","slug":"berlin","acceptsSignups":true,"baseId":"appBerlin","coords":{"lat":52.5,"lng":13.4}},
	{"title":"Hamburg","slug":"hamburg","acceptsSignups":false,"coords":{"lat":53.5,"lng":10.0}},
	{"title":"Wien","slug":"wien","acceptsSignups":true,"baseId":"appWien","coords":{"lat":48.2,"lng":16.4}}
]}}}`

func newTestApp(t *testing.T, env string, handler http.HandlerFunc) (*App, *bytes.Buffer, *prometheus.Registry) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Config{
		Endpoint:         server.URL,
		Timeout:          5 * time.Second,
		Environment:      env,
		DevChapterTitle:  "Test",
		DevChapterBaseID: "appe3hVONuwBkuQv1",
	}
	var out bytes.Buffer
	reg := prometheus.NewRegistry()
	return NewApp(cfg, reg, &out), &out, reg
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func TestChaptersCmd(t *testing.T) {
	app, out, reg := newTestApp(t, "production", respond(chaptersResponse))

	cmd := &ChaptersCmd{Signups: true}
	require.NoError(t, cmd.Run(context.Background(), app))

	var got []struct {
		Title string `json:"title"`
		Slug  string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, "standorte/berlin", got[0].Slug)
	require.Equal(t, "Wien", got[1].Title)

	series, err := testutil.GatherAndCount(reg, "sitedata_graphql_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, series)
}

func TestFormCmd(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		options []string
	}{
		{name: "Production", env: "production", options: []string{"Berlin", "Wien"}},
		{name: "Development", env: config.EnvDevelopment, options: []string{"Test", "Wien"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out, _ := newTestApp(t, tt.env, respond(chaptersResponse))

			cmd := &FormCmd{Dir: "../internal/form/testdata", Locale: "de", Name: "student"}
			require.NoError(t, cmd.Run(context.Background(), app))

			var res form.Result
			require.NoError(t, json.Unmarshal(out.Bytes(), &res))
			for _, f := range res.Form.Fields {
				if f.ID == form.ChapterFieldID {
					require.Equal(t, tt.options, f.Options)
					return
				}
			}
			t.Fatal("chapter field missing")
		})
	}
}

func TestPageCmdNotFound(t *testing.T) {
	app, _, _ := newTestApp(t, "production", respond(`{"data":{"pages":{"items":[]}}}`))

	err := (&PageCmd{Slug: "fehlt"}).Run(context.Background(), app)
	require.True(t, errors.IsNotFound(err))
}

func TestJSONCmdPrintsData(t *testing.T) {
	app, out, _ := newTestApp(t, "production", respond(`{"data":{"json":{"items":[{"data":{"a":"<b>"}}]}}}`))

	require.NoError(t, (&JSONCmd{Title: "footer"}).Run(context.Background(), app))
	require.JSONEq(t, `{"a":"<b>"}`, out.String())
	require.True(t, strings.Contains(out.String(), "<b>"), "HTML must not be escaped in output")
}

func TestCLIParsesCommands(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("sitedata"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"post", "sommerfest"})
	require.NoError(t, err)
	require.Equal(t, "post <slug>", kctx.Command())
	require.Equal(t, "sommerfest", cli.Post.Slug)
	require.Equal(t, []string{".env"}, cli.EnvFile)

	kctx, err = parser.Parse([]string{"chapters", "--signups"})
	require.NoError(t, err)
	require.Equal(t, "chapters", kctx.Command())
	require.True(t, cli.Chapters.Signups)
}
