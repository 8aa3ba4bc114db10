package templates

import (
	"strings"
	"testing"

	"github.com/KodaTao/PersonaCore/pkg/prompt"
)

func TestWakeUpHour_Render(t *testing.T) {
	got := prompt.RenderString(WakeUpHour,
		"Klaus Mueller is a sociology student.",
		"Klaus goes to bed around 11pm and is an early riser.",
		"Klaus")

	if strings.Contains(got, "!<INPUT") {
		t.Errorf("unreplaced placeholder in:\n%s", got)
	}
	if strings.Contains(got, "variables:") {
		t.Error("template comment should be stripped")
	}
	if !strings.Contains(got, "When does Klaus wake up today?") {
		t.Errorf("rendered prompt missing question:\n%s", got)
	}
	if !strings.Contains(got, `{"wake_up_hour": 8}`) {
		t.Error("rendered prompt should keep the example JSON")
	}
}

func TestAllTemplates_HaveMarker(t *testing.T) {
	all := map[string]string{
		"WakeUpHour":      WakeUpHour,
		"DailyPlan":       DailyPlan,
		"TaskDecomp":      TaskDecomp,
		"PoignancyEvent":  PoignancyEvent,
		"DecideToTalk":    DecideToTalk,
		"ExtractKeywords": ExtractKeywords,
	}

	for name, tmpl := range all {
		if !strings.Contains(tmpl, prompt.BlockMarker) {
			t.Errorf("%s: missing block marker", name)
		}
		if !strings.Contains(tmpl, "!<INPUT 0>!") {
			t.Errorf("%s: missing first input placeholder", name)
		}
	}
}

func TestTaskDecomp_Render(t *testing.T) {
	got := prompt.RenderString(TaskDecomp,
		"Klaus Mueller is a sociology student.",
		"Today Klaus plans to work on his research paper.",
		"write the introduction",
		"60")

	if !strings.Contains(got, `list the subtasks of "write the introduction" (total duration 60 minutes)`) {
		t.Errorf("rendered prompt missing task line:\n%s", got)
	}
}
