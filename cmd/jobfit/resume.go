package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/amishk599/jobfit/internal/rank"
	"github.com/amishk599/jobfit/internal/resume"
	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Print the loaded resume outline",
	Long:  "Loads the resume document and prints its sections, items, and the derived skill set used for matching.",
	RunE:  runResume,
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	doc, err := resume.Load(cfg.Resume.Path)
	if err != nil {
		logger.Error("failed to load resume", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Resume %s (%s)\n\n", cfg.Resume.Version, cfg.Resume.Path)
	for _, sec := range doc.Sections {
		fmt.Printf("%s\n", sec.Name)
		for _, item := range sec.Items {
			if item.Content != "" {
				fmt.Printf("  %s\n", truncate(item.Content, 90))
			}
			if item.Subsection != "" {
				fmt.Printf("  %s (%d bullets)\n", item.Subsection, len(item.Bullet))
			}
		}
		fmt.Println()
	}

	skills := rank.ResumeSkills(doc.SectionText("TechnicalSkills"))
	if len(skills) == 0 {
		fmt.Println("Derived skills: none (no TechnicalSkills section?)")
	} else {
		fmt.Printf("Derived skills (%d): %s\n", len(skills), strings.Join(skills, ", "))
	}
	return nil
}
