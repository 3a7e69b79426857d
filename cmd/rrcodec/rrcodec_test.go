package main

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/config"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/json"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func summaries(t *testing.T, output string) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	sc := bufio.NewScanner(strings.NewReader(output))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), sc.Text())
		out = append(out, m)
	}
	require.NoError(t, sc.Err())
	return out
}

func writeClip(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("\x00\x00\x00\x18ftypmp42 not really a video"), 0o600))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rrcodec v"+version)
	assert.Contains(t, out, "Stream format: 0.23.0")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rrcodec.yaml")

	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.NewDefault().Encoding, cfg.Encoding)
}

func TestEncodeThenInspect(t *testing.T) {
	for _, compression := range []string{"off", "lz4", "zstd"} {
		t.Run(compression, func(t *testing.T) {
			dir := t.TempDir()
			clip := writeClip(t, dir)
			stream := filepath.Join(dir, "clip.rrd")

			_, err := run(t, "--compression", compression, "encode", clip, "-o", stream, "--recording-id", "take-1")
			require.NoError(t, err)

			out, err := run(t, "inspect", stream)
			require.NoError(t, err)
			msgs := summaries(t, out)
			require.Len(t, msgs, 2)

			assert.Equal(t, "set_store_info", msgs[0]["kind"])
			assert.Equal(t, "take-1", msgs[0]["store_id"])
			info := msgs[0]["info"].(map[string]interface{})
			assert.Equal(t, "unknown_app_id", info["application_id"])
			assert.Equal(t, map[string]interface{}{"major": 0.0, "minor": 23.0, "patch": 0.0}, info["store_version"])

			assert.Equal(t, "arrow_msg", msgs[1]["kind"])
			assert.Equal(t, "take-1", msgs[1]["store_id"])
			assert.Equal(t, "/clip", msgs[1]["entity_path"])
			assert.EqualValues(t, 1, msgs[1]["rows"])
			assert.Equal(t, []interface{}{"log_time"}, msgs[1]["timelines"])
			components := msgs[1]["components"].([]interface{})
			require.Len(t, components, 2)
			assert.Contains(t, components[0], "rerun.archetypes.AssetVideo:blob#")
			assert.Contains(t, components[1], "rerun.archetypes.AssetVideo:media_type#")
		})
	}
}

func TestEncodeWithBlueprintAndAppend(t *testing.T) {
	dir := t.TempDir()
	clip := writeClip(t, dir)
	stream := filepath.Join(dir, "out.rrd")

	_, err := run(t, "encode", clip, "-o", stream, "--entity", "videos/main", "--time-axis-link", "LinkToGlobal")
	require.NoError(t, err)
	_, err = run(t, "encode", clip, "-o", stream, "--append")
	require.NoError(t, err)

	out, err := run(t, "inspect", stream)
	require.NoError(t, err)
	msgs := summaries(t, out)
	require.Len(t, msgs, 7, "five messages from the first stream, two from the appended one")

	var kinds []string
	for _, m := range msgs {
		kinds = append(kinds, m["kind"].(string))
	}
	assert.Equal(t, []string{
		"set_store_info", "arrow_msg",
		"set_store_info", "arrow_msg", "blueprint_activation_command",
		"set_store_info", "arrow_msg",
	}, kinds)

	assert.Equal(t, "/videos/main", msgs[1]["entity_path"])
	assert.Equal(t, "Blueprint", msgs[2]["store_kind"])
	assert.Equal(t, "unknown_app_id", msgs[2]["store_id"], "the default blueprint shares the application id")
	assert.Equal(t, "/time_panel/time_axis", msgs[3]["entity_path"])
	assert.Equal(t, true, msgs[4]["make_active"])
	assert.Equal(t, true, msgs[4]["make_default"])
	assert.Equal(t, "/clip", msgs[6]["entity_path"])
}

func TestEncodeErrors(t *testing.T) {
	dir := t.TempDir()
	clip := writeClip(t, dir)
	stream := filepath.Join(dir, "out.rrd")

	_, err := run(t, "encode", filepath.Join(dir, "missing.mp4"), "-o", stream)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFileOpenFailure), "got %v", err)

	_, err = run(t, "encode", clip, clip, "-o", stream, "--entity", "one")
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidArgument), "got %v", err)

	_, err = run(t, "encode", clip, "-o", stream, "--time-axis-link", "sideways")
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidArgument), "got %v", err)

	_, err = run(t, "--compression", "brotli", "encode", clip, "-o", stream)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig), "got %v", err)
}

func TestInspectRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.rrd")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a log stream"), 0o600))

	_, err := run(t, "inspect", path)
	assert.True(t, errors.IsType(err, errors.ErrorTypeDecode), "got %v", err)
}

func TestInspectFromStdin(t *testing.T) {
	dir := t.TempDir()
	stream := filepath.Join(dir, "clip.rrd")
	_, err := run(t, "encode", writeClip(t, dir), "-o", stream)
	require.NoError(t, err)
	data, err := os.ReadFile(stream)
	require.NoError(t, err)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(bytes.NewReader(data))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--log-level", "error", "inspect", "-", "--pretty"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "\"kind\": \"set_store_info\"")
	assert.Contains(t, out.String(), "\"entity_path\": \"/clip\"")
}

func TestInspectLogsMappingStats(t *testing.T) {
	dir := t.TempDir()
	stream := filepath.Join(dir, "clip.rrd")
	_, err := run(t, "encode", writeClip(t, dir), "-o", stream)
	require.NoError(t, err)
	info, err := os.Stat(stream)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	var out bytes.Buffer
	require.NoError(t, runInspect(context.Background(), &app{log: zap.New(core)}, stream, false, nil, &out))

	entries := logs.FilterMessage("mapped input released").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, info.Size(), fields["size"])
	assert.EqualValues(t, info.Size(), fields["bytes_read"])
	assert.NotZero(t, fields["pages_read"])
}
