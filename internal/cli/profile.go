package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vitalctl/vital/internal/model"
	"github.com/vitalctl/vital/internal/store"
	"gopkg.in/yaml.v3"
)

var profileUpdateFile string

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage user profiles",
	Long: `Profiles describe one user: demographics, goals, risk factors,
current behaviors, and biomarkers. Every field is optional; the
completeness score reports how much of the profile is filled in.`,
}

var profileCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new profile from the generic template",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileCreate,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a profile as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update NAME",
	Short: "Replace a profile from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileUpdate,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDelete,
}

var profileCompletenessCmd = &cobra.Command{
	Use:   "completeness NAME",
	Short: "Report how much of a profile is filled in",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileCompleteness,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileCompletenessCmd)

	profileUpdateCmd.Flags().StringVar(&profileUpdateFile, "file", "", "JSON file with the new profile contents (required)")
	_ = profileUpdateCmd.MarkFlagRequired("file")
}

func openProfileStore() (*store.ProfileStore, error) {
	cfg := activeConfig()
	return store.NewProfileStore(cfg.ProfilesDir)
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	cfg := activeConfig()
	profiles, err := store.NewProfileStore(cfg.ProfilesDir)
	if err != nil {
		return err
	}

	profile, err := loadProfileTemplate(cfg.DataDir)
	if err != nil {
		return err
	}
	if err := profiles.Create(args[0], *profile); err != nil {
		return err
	}

	fmt.Printf("Created profile %q (%s)\n", args[0], profiles.Path(args[0]))
	return nil
}

// loadProfileTemplate seeds new profiles from the generic-human defaults
// record when it exists, otherwise from an empty profile.
func loadProfileTemplate(dataDir string) (*model.UserProfile, error) {
	path := filepath.Join(dataDir, "defaults", "generic_human.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.UserProfile{}, nil
		}
		return nil, fmt.Errorf("read profile template: %w", err)
	}

	var profile model.UserProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse profile template %s: %w", path, err)
	}
	return &profile, nil
}

func runProfileList(cmd *cobra.Command, args []string) error {
	profiles, err := openProfileStore()
	if err != nil {
		return err
	}

	names, err := profiles.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No profiles found.")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	profiles, err := openProfileStore()
	if err != nil {
		return err
	}

	profile, err := profiles.Read(args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	profiles, err := openProfileStore()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(profileUpdateFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", profileUpdateFile, err)
	}

	var profile model.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("parse %s: %w", profileUpdateFile, err)
	}

	if err := profiles.Update(args[0], profile); err != nil {
		return err
	}
	fmt.Printf("Updated profile %q\n", args[0])
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	profiles, err := openProfileStore()
	if err != nil {
		return err
	}
	if err := profiles.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted profile %q\n", args[0])
	return nil
}

func runProfileCompleteness(cmd *cobra.Command, args []string) error {
	profiles, err := openProfileStore()
	if err != nil {
		return err
	}

	profile, err := profiles.Read(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Profile %q is %.1f%% complete\n", args[0], profile.Completeness())
	return nil
}
