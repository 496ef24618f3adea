package loader

import "github.com/nathoo/dailyquest/types"

// DefaultQuest returns the built-in daily quest used when no definition
// file is configured.
func DefaultQuest() *types.Quest {
	return &types.Quest{
		Title:    "QUEST INFO",
		Subtitle: "[Daily Quest: Player Training has arrived]",
		Tasks: []types.TaskDef{
			{ID: "pushups", Name: "Push-ups", Max: 100, Step: 5},
			{ID: "situps", Name: "Sit-ups", Max: 100, Step: 5},
			{ID: "squats", Name: "Squats", Max: 100, Step: 5},
		},
	}
}
