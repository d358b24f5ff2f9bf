package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/payquery/payquery/internal/config"
	"github.com/payquery/payquery/internal/query"
	"github.com/payquery/payquery/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage environments and settings",
	Long: `Manage API environments and pq settings.

Environments are named sets of credentials stored in ~/payquery.yml
(override with the "config" setting or PQ_CONFIG):

  environments:
    default:
      api_token: ...
      org_id: "123"
      entrypoint: mypaypoint
      environment: sandbox

Select one with "for <name>" in a query. PAYABLI_API_TOKEN and
PAYABLI_ENVIRONMENT override the token and environment of whichever
environment is selected.

Settings (format, timeout, retries, pager, no-pager, config) live in a
separate settings file and can also be set with PQ_* variables.

Examples:
  pq config new prod
  pq config list
  pq config show prod
  pq config set format yaml
  pq config get timeout`,
}

var configNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create or replace an environment interactively",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := query.DefaultTarget
		if len(args) == 1 {
			name = args[0]
		}
		if _, err := createEnvironment(config.EnvironmentsPath(), name); err != nil {
			fail(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Environment %q saved to %s\n",
			ui.RenderPassIcon(), name, config.EnvironmentsPath())
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured environments",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := listEnvironments(cmd.OutOrStdout(), config.EnvironmentsPath()); err != nil {
			fail(err)
		}
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show one environment with its token masked",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := query.DefaultTarget
		if len(args) == 1 {
			name = args[0]
		}
		if err := showEnvironment(cmd.OutOrStdout(), config.EnvironmentsPath(), name); err != nil {
			fail(err)
		}
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the environments and settings file locations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if jsonOutput {
			outputJSON(cmd.OutOrStdout(), map[string]string{
				"environments": config.EnvironmentsPath(),
				"settings":     config.SettingsPath(),
			})
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.EnvironmentsPath())
		fmt.Fprintln(cmd.OutOrStdout(), config.SettingsPath())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting in the settings file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key, value := args[0], args[1]
		if err := config.SetSetting(key, value); err != nil {
			fail(err)
		}
		if jsonOutput {
			outputJSON(cmd.OutOrStdout(), map[string]string{
				"key":      key,
				"value":    value,
				"location": config.SettingsPath(),
			})
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a setting, or all settings",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printSettings(cmd.OutOrStdout(), args); err != nil {
			fail(err)
		}
	},
}

// createEnvironment prompts for an environment and saves it under name,
// keeping the other environments in the file.
func createEnvironment(path, name string) (config.Environment, error) {
	f, err := config.LoadOrEmpty(path)
	if err != nil {
		return config.Environment{}, err
	}
	env, _ := f.Get(name)
	if err := runEnvironmentForm(name, &env); err != nil {
		return config.Environment{}, err
	}
	f.Put(name, env)
	if err := f.Save(path); err != nil {
		return config.Environment{}, err
	}
	return env, nil
}

func runEnvironmentForm(name string, env *config.Environment) error {
	if env.Environment == "" {
		env.Environment = "sandbox"
	}
	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(fmt.Sprintf("Creating environment %q", name)),
			huh.NewInput().
				Title("API token").
				Description("Sent as the requestToken header").
				EchoMode(huh.EchoModePassword).
				Value(&env.APIToken).
				Validate(required("API token")),
			huh.NewInput().
				Title("Org ID").
				Description("Appended to routes ending in 'org'").
				Value(&env.OrgID),
			huh.NewInput().
				Title("Entrypoint").
				Description("Appended to routes without an explicit id").
				Value(&env.Entrypoint),
			huh.NewSelect[string]().
				Title("Environment").
				Options(
					huh.NewOption("Sandbox", "sandbox"),
					huh.NewOption("QA", "qa"),
					huh.NewOption("Production", "production"),
				).
				Value(&env.Environment),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("environment %q not saved: cancelled", name)
		}
		return fmt.Errorf("form error: %w", err)
	}
	env.APIToken = strings.TrimSpace(env.APIToken)
	env.OrgID = strings.TrimSpace(env.OrgID)
	env.Entrypoint = strings.TrimSpace(env.Entrypoint)
	return nil
}

func listEnvironments(w io.Writer, path string) error {
	f, err := config.Load(path)
	if err != nil {
		return err
	}
	names := f.Names()

	if jsonOutput {
		masked := make(map[string]config.Environment, len(names))
		for _, name := range names {
			env, _ := f.Get(name)
			masked[name] = env.Masked()
		}
		outputJSON(w, masked)
		return nil
	}

	if len(names) == 0 {
		fmt.Fprintf(w, "No environments in %s\n", path)
		return nil
	}
	fmt.Fprintf(w, "%s %s %s %s\n",
		ui.RenderCategory(ui.PadRight("name", 16)),
		ui.RenderCategory(ui.PadRight("environment", 12)),
		ui.RenderCategory(ui.PadRight("entrypoint", 20)),
		ui.RenderCategory("org"))
	for _, name := range names {
		env, _ := f.Get(name)
		fmt.Fprintf(w, "%s %s %s %s\n",
			ui.RenderAccent(ui.PadRight(ui.TruncateSimple(name, 16), 16)),
			ui.PadRight(env.Environment, 12),
			ui.PadRight(ui.TruncateSimple(env.Entrypoint, 20), 20),
			env.OrgID)
	}
	return nil
}

func showEnvironment(w io.Writer, path, name string) error {
	f, err := config.Load(path)
	if err != nil {
		return err
	}
	env, ok := f.Get(name)
	if !ok {
		return fmt.Errorf("%w %q in %s", config.ErrUnknownEnvironment, name, path)
	}
	env = env.Masked()

	if jsonOutput {
		outputJSON(w, env)
		return nil
	}
	text, err := ui.PrettyYAML(env)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n%s\n", ui.RenderAccent(name+":"), text)
	fmt.Fprintf(w, "%s %s\n", ui.RenderMuted("base url:"), env.BaseURL())
	return nil
}

func printSettings(w io.Writer, keys []string) error {
	if len(keys) == 0 {
		for key := range config.SettingKeys {
			keys = append(keys, key)
		}
		sort.Strings(keys)
	}
	for _, key := range keys {
		if !config.IsSettingKey(key) {
			return fmt.Errorf("unknown setting %q", key)
		}
	}

	if jsonOutput {
		values := make(map[string]string, len(keys))
		for _, key := range keys {
			values[key] = config.GetString(key)
		}
		outputJSON(w, values)
		return nil
	}
	if len(keys) == 1 {
		fmt.Fprintln(w, config.GetString(keys[0]))
		return nil
	}
	for _, key := range keys {
		fmt.Fprintf(w, "%s %s\n", ui.PadRight(key, 10), config.GetString(key))
	}
	if used := config.ConfigFileUsed(); used != "" {
		fmt.Fprintf(w, "%s\n", ui.RenderMuted("(from "+used+")"))
	}
	return nil
}

func init() {
	configCmd.AddCommand(configNewCmd, configListCmd, configShowCmd, configPathCmd, configSetCmd, configGetCmd)
	rootCmd.AddCommand(configCmd)
}
