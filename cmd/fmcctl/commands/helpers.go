package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"syscall"

	"github.com/netdevops-io/go-fmc/pkg/fmc"
	"github.com/netdevops-io/go-fmc/pkg/fmcclient"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// createClient builds an FMC client from viper-resolved configuration,
// prompting for the password when neither flag, env, nor config file
// provides one.
func createClient() (fmc.Client, error) {
	password := viper.GetString("password")
	if password == "" {
		prompted, err := promptPassword()
		if err != nil {
			return nil, err
		}

		password = prompted
	}

	config := &fmc.Config{
		Host:                 viper.GetString("host"),
		Username:             viper.GetString("username"),
		Password:             password,
		VerifySSL:            !viper.GetBool("insecure"),
		MaxRequestsPerMinute: viper.GetInt("rate-limit"),
		Debug:                viper.GetBool("verbose"),
	}

	if viper.GetBool("verbose") {
		config.Logger = newStderrLogger()
	}

	return fmcclient.New(config)
}

// promptPassword reads a password from the terminal without echo.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")

	password, err := term.ReadPassword(int(syscall.Stdin))

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	return string(password), nil
}

// renderStructured writes v to stdout as JSON or YAML. It returns false when
// the selected output format is the default table format, leaving rendering
// to the caller.
func renderStructured(v interface{}) (bool, error) {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return true, encoder.Encode(v)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return true, encoder.Encode(v)
	default:
		return false, nil
	}
}

// stderrLogger is a minimal fmc.Logger for --verbose runs.
type stderrLogger struct{}

func newStderrLogger() fmc.Logger {
	return stderrLogger{}
}

func (stderrLogger) Debug(msg string, fields map[string]interface{}) { logLine("DEBUG", msg, fields) }
func (stderrLogger) Info(msg string, fields map[string]interface{})  { logLine("INFO", msg, fields) }
func (stderrLogger) Warn(msg string, fields map[string]interface{})  { logLine("WARN", msg, fields) }
func (stderrLogger) Error(msg string, fields map[string]interface{}) { logLine("ERROR", msg, fields) }

func logLine(level, msg string, fields map[string]interface{}) {
	if len(fields) == 0 {
		fmt.Fprintf(os.Stderr, "%s %s\n", level, msg)

		return
	}

	fmt.Fprintf(os.Stderr, "%s %s %v\n", level, msg, fields)
}
