package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/entrhq/promptpilot/pkg/prompt"
)

type itemKind int

const (
	itemPrompt itemKind = iota
	itemAdd
	itemSeparator
	itemManage
	itemEdit
	itemDelete
	itemSwitch
	itemBack
)

const (
	labelAddNew        = "Add New"
	labelManage        = "Manage"
	labelEditPrompt    = "Edit Prompt"
	labelDeletePrompt  = "Delete Prompt"
	labelSwitchProject = "Switch Project"
	labelBack          = "Back"
	separatorLine      = "────────────"

	descriptionWidth = 60
)

// menuItem is one row in any of the menus.
type menuItem struct {
	kind      itemKind
	label     string
	prompt    prompt.Prompt
	showScope bool
}

func (i menuItem) FilterValue() string {
	if i.kind == itemPrompt {
		return i.prompt.Name
	}
	return i.label
}

func (i menuItem) Title() string {
	if i.kind == itemPrompt {
		return i.prompt.Name
	}
	return i.label
}

func (i menuItem) Description() string {
	switch i.kind {
	case itemPrompt:
		body := truncate(firstLine(i.prompt.Body), descriptionWidth)
		if i.showScope {
			return i.prompt.Scope.Label() + " · " + body
		}
		return body
	case itemAdd:
		return "Create a new prompt"
	case itemManage:
		return "Edit, delete or switch project"
	case itemEdit:
		return "Change an existing prompt"
	case itemDelete:
		return "Remove a prompt"
	case itemSwitch:
		return "Open another project folder"
	}
	return ""
}

func promptItems(prompts []prompt.Prompt, showScope bool) []list.Item {
	items := make([]list.Item, 0, len(prompts))
	for _, p := range prompt.SortByName(prompts) {
		items = append(items, menuItem{kind: itemPrompt, prompt: p, showScope: showScope})
	}
	return items
}

// mainItems lists Add New, the prompts, a separator and Manage.
func mainItems(prompts []prompt.Prompt, showScope bool) []list.Item {
	items := []list.Item{menuItem{kind: itemAdd, label: labelAddNew}}
	items = append(items, promptItems(prompts, showScope)...)
	items = append(items,
		menuItem{kind: itemSeparator, label: separatorLine},
		menuItem{kind: itemManage, label: labelManage},
	)
	return items
}

func manageItems() []list.Item {
	return []list.Item{
		menuItem{kind: itemEdit, label: labelEditPrompt},
		menuItem{kind: itemDelete, label: labelDeletePrompt},
		menuItem{kind: itemSwitch, label: labelSwitchProject},
		menuItem{kind: itemBack, label: labelBack},
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
