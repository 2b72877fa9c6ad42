package pluginlist

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultPlugins is used when no plugin list file is available
var DefaultPlugins = []string{
	"ansicolor",
	"aws-credentials",
	"blueocean",
	"build-timeout",
	"cloudbees-disk-usage-simple",
	"cloudbees-folder",
	"configuration-as-code",
	"credentials-binding",
	"dark-theme",
	"dashboard-view",
	"dependency-check-jenkins-plugin",
	"dependency-track",
	"docker-plugin",
	"ec2",
	"email-ext",
	"extended-read-permission",
	"git",
	"javax-mail-api",
	"opentelemetry",
	"pipeline-build-step",
	"pipeline-graph-view",
	"pipeline-stage-view",
	"pipeline-utility-steps",
	"prometheus",
	"role-strategy",
	"saferestart",
	"saml",
	"schedule-build",
	"sonar",
	"ssh-slaves",
	"sshd",
	"theme-manager",
	"thinBackup",
	"timestamper",
	"workflow-aggregator",
	"ws-cleanup",
}

// Load reads plugin identifiers from path. It never fails: a missing,
// unreadable or empty list falls back to DefaultPlugins.
func Load(path string, log logrus.FieldLogger) []string {
	if log == nil {
		log = logrus.New()
	}

	if path == "" {
		log.Debug("No plugin list file configured, using built-in list")
		return Defaults()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Infof("Plugin list %s not found, using built-in list of %d plugins", path, len(DefaultPlugins))
		} else {
			log.Warnf("Failed to read plugin list %s: %v (using built-in list)", path, err)
		}
		return Defaults()
	}

	plugins := Parse(data)
	if len(plugins) == 0 {
		log.Warnf("Plugin list %s contains no plugins, using built-in list", path)
		return Defaults()
	}

	log.Debugf("Loaded %d plugins from %s", len(plugins), path)
	return plugins
}

// Parse extracts identifiers from newline-delimited list content.
// Blank lines and '#' comments are skipped and a trailing ":version" is dropped.
// Lines may be of any length.
func Parse(data []byte) []string {
	var plugins []string

	r := bufio.NewReader(bytes.NewReader(data))
	for {
		line, err := r.ReadString('\n')
		if id := parseLine(line); id != "" {
			plugins = append(plugins, id)
		}
		if err != nil {
			// the reader is in memory, so the only error is io.EOF
			break
		}
	}

	return plugins
}

func parseLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return ""
	}

	if i := strings.Index(line, ":"); i >= 0 {
		line = line[:i]
	}

	return strings.TrimSpace(line)
}

// Defaults returns a copy of DefaultPlugins
func Defaults() []string {
	out := make([]string, len(DefaultPlugins))
	copy(out, DefaultPlugins)
	return out
}
