package legacy

import (
	"reflect"
	"testing"

	"github.com/KodaTao/PersonaCore/pkg/schema"
)

func TestToDomainShape_TaskDecomp(t *testing.T) {
	value := &schema.TaskDecomposition{
		Subtasks: []schema.Subtask{
			{Description: "sketch outline", DurationMinutes: 15},
			{Description: "paint", DurationMinutes: 45},
		},
	}

	got := ToDomainShape(value, schema.FuncTaskDecomp)

	want := [][]any{
		{"sketch outline", 15},
		{"paint", 45},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToDomainShape() = %v, want %v", got, want)
	}
}

func TestToDomainShape_DailyPlan(t *testing.T) {
	value := &schema.DailyPlanResponse{
		Activities: []schema.DailyPlanActivity{
			{Activity: "wake up", Time: "7:00 am"},
			{Activity: "have breakfast", Time: "7:30 am"},
		},
	}

	got := ToDomainShape(value, schema.FuncDailyPlan)

	want := []string{"wake up at 7:00 am", "have breakfast at 7:30 am"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToDomainShape() = %v, want %v", got, want)
	}
}

func TestToDomainShape_WakeUpHour(t *testing.T) {
	got := ToDomainShape(&schema.WakeUpHourResponse{WakeUpHour: 7}, schema.FuncWakeUpHour)
	if got != 7 {
		t.Errorf("ToDomainShape() = %v, want bare 7", got)
	}
}

func TestToDomainShape_EventTriple(t *testing.T) {
	value := &schema.EventTriple{Subject: "Klaus", Predicate: "is reading", Object: "book"}

	got := ToDomainShape(value, schema.FuncEventTriple)

	want := []string{"Klaus", "is reading", "book"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToDomainShape() = %v, want %v", got, want)
	}
}

func TestToDomainShape_Conversation(t *testing.T) {
	value := &schema.ConversationResponse{
		Conversation: []schema.ConversationUtterance{
			{Speaker: "Maria", Utterance: "Good morning!"},
			{Speaker: "Klaus", Utterance: "Morning, Maria."},
		},
	}

	got := ToDomainShape(value, schema.FuncCreateConversation)

	want := [][]string{
		{"Maria", "Good morning!"},
		{"Klaus", "Morning, Maria."},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToDomainShape() = %v, want %v", got, want)
	}
}

func TestToDomainShape_Decision(t *testing.T) {
	value := &schema.DecisionResponse{Decision: "yes", Reasoning: "they are friends"}

	got := ToDomainShape(value, schema.FuncDecideToTalk)
	if got != "yes" {
		t.Errorf("ToDomainShape() = %v, want yes", got)
	}

	// 附带的理由字段不泄漏到朴素形态
	got = ToDomainShape(value, schema.FuncDecideToReact)
	if got != "yes" {
		t.Errorf("ToDomainShape() = %v, want yes", got)
	}
}

func TestToDomainShape_StringProjections(t *testing.T) {
	tests := []struct {
		fn    schema.FuncID
		value any
		want  string
	}{
		{schema.FuncActionSector, &schema.SectorResponse{Sector: "the Ville"}, "the Ville"},
		{schema.FuncActionArena, &schema.ArenaResponse{Arena: "library"}, "library"},
		{schema.FuncActionGameObject, &schema.GameObjectResponse{GameObject: "desk"}, "desk"},
		{schema.FuncKeywordToThoughts, &schema.ThoughtResponse{Thought: "books matter"}, "books matter"},
		{schema.FuncMemoOnConvo, &schema.ConversationMemo{Memo: "catch up later"}, "catch up later"},
		{schema.FuncTextOutput, &schema.TextOutput{Output: "plain text"}, "plain text"},
	}

	for _, tt := range tests {
		got := ToDomainShape(tt.value, tt.fn)
		if got != tt.want {
			t.Errorf("ToDomainShape(%s) = %v, want %s", tt.fn, got, tt.want)
		}
	}
}

func TestToDomainShape_UnknownFallsBackToFieldMap(t *testing.T) {
	value := &schema.Pronunciatio{Emoji: "📖", Description: "reading"}

	got := ToDomainShape(value, schema.FuncPronunciatio)

	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("unknown projection should produce field map, got %T", got)
	}
	if m["emoji"] != "📖" || m["description"] != "reading" {
		t.Errorf("field map = %v", m)
	}
}

func TestToDomainShape_TypeMismatch(t *testing.T) {
	// 标识符与值类型不匹配：回退为字段表而不是崩溃
	got := ToDomainShape(&schema.TextOutput{Output: "x"}, schema.FuncWakeUpHour)

	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("mismatched projection should produce field map, got %T", got)
	}
	if m["output"] != "x" {
		t.Errorf("field map = %v", m)
	}
}
