package utils

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ochronus/goimgur/internal/config"
)

const configTemplate = `# Imgur application client id, sent as "Authorization: Client-ID <id>".
# Can be overridden with APP_ID.
client_id = {{CLIENT_ID}}

# Upload history used by 'goimgur clear'. Set to "/dev/null" to disable it.
# Can be overridden with APP_HISTORY.
history = {{HISTORY}}

# Optional API root, default {{API_URL}}
api_url = {{API_URL}}

# Optional log level, default "info"
loglevel = "info"

# Optional HTTP timeout in secs, default 30
timeout = 30
`

// Confirm asks a yes/no question on w and reads the answer from r.
// Anything but "y" or "yes" declines, including end of input.
func Confirm(r *bufio.Reader, w io.Writer, question string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N] ", question)

	answer, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && answer == "" {
		fmt.Fprintln(w)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// RenderConfig fills the config template. Values are written as TOML
// strings so paths with quotes or backslashes survive a round trip.
func RenderConfig(clientID, history string) (string, error) {
	replacer := make([]string, 0, 6)
	for placeholder, value := range map[string]string{
		"{{CLIENT_ID}}": clientID,
		"{{HISTORY}}":   history,
		"{{API_URL}}":   config.DefaultAPIURL,
	} {
		quoted, err := tomlString(value)
		if err != nil {
			return "", err
		}
		replacer = append(replacer, placeholder, quoted)
	}
	return strings.NewReplacer(replacer...).Replace(configTemplate), nil
}

// tomlString encodes s as a TOML string literal.
func tomlString(s string) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]string{"v": s}); err != nil {
		return "", fmt.Errorf("failed to encode config value: %w", err)
	}
	return strings.TrimPrefix(strings.TrimSpace(buf.String()), "v = "), nil
}

// GenerateConfig writes a configuration file, backing up an existing one.
func GenerateConfig(configPath, clientID, history string, w io.Writer) error {
	fmt.Fprintf(w, "Generating config %s\n", configPath)

	content, err := RenderConfig(clientID, history)
	if err != nil {
		return err
	}

	// Check if config file already exists and back it up
	if _, err := os.Stat(configPath); err == nil {
		backupPath := configPath + ".bak"
		fmt.Fprintf(w, "Backing up config %s\n", configPath)
		if err := os.Rename(configPath, backupPath); err != nil {
			return fmt.Errorf("failed to backup config: %w", err)
		}
	}

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	fmt.Fprintf(w, "Writing %s\n", configPath)
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
