/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizer(t *testing.T) {
	tk := tokenizer{}
	assert.Equal(t, []string{"Hello", "world", "ab", "its"}, tk.tokens("Hello, world!  a+b  it's"))
	assert.Empty(t, tk.tokens("  ... !!! "))

	lower := tokenizer{lowercase: true}
	assert.Equal(t, []string{"the", "the"}, lower.tokens("The the."))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sketch:
  k: 5
  hasher: xxhash
report:
  top: 3
tokenizer:
  lowercase: true
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Sketch.K)
	assert.Equal(t, "xxhash", cfg.Sketch.Hasher)
	assert.Equal(t, 3, cfg.Report.Top)
	assert.True(t, cfg.Tokenizer.Lowercase)
	// untouched keys keep their defaults
	assert.Equal(t, 20, cfg.Sketch.Depth)
	assert.Equal(t, 500, cfg.Sketch.Width)
	assert.Equal(t, 10000, cfg.Report.Every)
	assert.NoError(t, cfg.Validate())

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := defaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Sketch.Hasher = "md5"
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Log.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Report.Every = -1
	assert.Error(t, cfg.Validate())
}

func execute(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(strings.NewReader(input), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCommandFromStdin(t *testing.T) {
	stdout, stderr, err := execute(t, "a a a\nb, b! c\n", "--k", "2", "--top", "2", "--every", "1", "--log-level", "debug")
	require.NoError(t, err)
	assert.Equal(t, "3 a\n2 b\n", stdout)
	assert.Contains(t, stderr, "progress")
	assert.Contains(t, stderr, "sketch created")
}

func TestCommandFromFilesWithConfig(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(input, []byte("x y x\nX z x\n"), 0o600))
	config := filepath.Join(dir, "topk.yaml")
	require.NoError(t, os.WriteFile(config, []byte("sketch:\n  k: 1\ntokenizer:\n  lowercase: true\n"), 0o600))

	stdout, stderr, err := execute(t, "", "--config", config, "--metrics", "--every", "0", input)
	require.NoError(t, err)
	assert.Equal(t, "4 x\n", stdout)
	assert.Contains(t, stderr, "topk_admission_total")
	assert.NotContains(t, stderr, "progress")
}

func TestCommandErrors(t *testing.T) {
	_, _, err := execute(t, "", "--k", "0")
	assert.Error(t, err)

	_, _, err = execute(t, "", "--hasher", "md5")
	assert.Error(t, err)

	_, _, err = execute(t, "", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
