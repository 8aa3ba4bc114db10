// Package legacy 将类型化的校验结果映射为各调用方期望的松散数据形态
//
// 这层间接存在的原因：富类型校验层可以独立演进，
// 而大量调用点仍然期望 [描述, 时长] 这类朴素结构
package legacy

import (
	"encoding/json"

	"github.com/KodaTao/PersonaCore/pkg/schema"
)

// ToDomainShape 把类型化的值投影为认知函数调用方期望的朴素形态
// 映射按函数标识符逐一列举；未知的标识符回退为完整字段表
func ToDomainShape(value any, fn schema.FuncID) any {
	switch fn {
	case schema.FuncTaskDecomp:
		if v, ok := value.(*schema.TaskDecomposition); ok {
			out := make([][]any, 0, len(v.Subtasks))
			for _, s := range v.Subtasks {
				out = append(out, []any{s.Description, s.DurationMinutes})
			}
			return out
		}

	case schema.FuncDailyPlan:
		if v, ok := value.(*schema.DailyPlanResponse); ok {
			out := make([]string, 0, len(v.Activities))
			for _, a := range v.Activities {
				out = append(out, a.Activity+" at "+a.Time)
			}
			return out
		}

	case schema.FuncHourlySchedule:
		if v, ok := value.(*schema.HourlyScheduleResponse); ok {
			out := make([][]any, 0, len(v.Activities))
			for _, a := range v.Activities {
				out = append(out, []any{a.Activity, a.DurationMinutes})
			}
			return out
		}

	case schema.FuncNewDecompSchedule:
		if v, ok := value.(*schema.NewDecompScheduleResponse); ok {
			out := make([][]any, 0, len(v.Schedule))
			for _, item := range v.Schedule {
				out = append(out, []any{item.Task, item.Duration})
			}
			return out
		}

	case schema.FuncWakeUpHour:
		if v, ok := value.(*schema.WakeUpHourResponse); ok {
			return v.WakeUpHour
		}

	case schema.FuncExtractKeywords:
		if v, ok := value.(*schema.KeywordExtractionResponse); ok {
			return v.Keywords
		}

	case schema.FuncPoignancy:
		if v, ok := value.(*schema.PoignancyRating); ok {
			return v.Rating
		}

	case schema.FuncEventTriple:
		if v, ok := value.(*schema.EventTriple); ok {
			return []string{v.Subject, v.Predicate, v.Object}
		}

	case schema.FuncActionLocation:
		if v, ok := value.(*schema.ActionLocation); ok {
			return []string{v.Sector, v.Arena, v.GameObject}
		}

	case schema.FuncCreateConversation:
		if v, ok := value.(*schema.ConversationResponse); ok {
			return utterancePairs(v.Conversation)
		}

	case schema.FuncAgentChat:
		if v, ok := value.(*schema.AgentChatResponse); ok {
			return utterancePairs(v.Dialogue)
		}

	case schema.FuncDecideToTalk, schema.FuncDecideToReact:
		if v, ok := value.(*schema.DecisionResponse); ok {
			return v.Decision
		}

	case schema.FuncActionSector:
		if v, ok := value.(*schema.SectorResponse); ok {
			return v.Sector
		}

	case schema.FuncActionArena:
		if v, ok := value.(*schema.ArenaResponse); ok {
			return v.Arena
		}

	case schema.FuncActionGameObject:
		if v, ok := value.(*schema.GameObjectResponse); ok {
			return v.GameObject
		}

	case schema.FuncActObjDesc:
		if v, ok := value.(*schema.ActionObjectDescription); ok {
			return v.Description
		}

	case schema.FuncSummarizeConversation:
		if v, ok := value.(*schema.ConversationSummary); ok {
			return v.Summary
		}

	case schema.FuncAgentChatSummarizeIdeas:
		if v, ok := value.(*schema.AgentChatSummaryIdeas); ok {
			return v.Summary
		}

	case schema.FuncAgentChatSummarizeRelationship:
		if v, ok := value.(*schema.RelationshipSummary); ok {
			return v.Summary
		}

	case schema.FuncSummarizeIdeas:
		if v, ok := value.(*schema.SummarizeIdeasResponse); ok {
			return v.Summary
		}

	case schema.FuncKeywordToThoughts, schema.FuncConvoToThoughts:
		if v, ok := value.(*schema.ThoughtResponse); ok {
			return v.Thought
		}

	case schema.FuncWhisperInnerThought:
		if v, ok := value.(*schema.InnerThought); ok {
			return v.Thought
		}

	case schema.FuncPlanningThoughtOnConvo:
		if v, ok := value.(*schema.PlanningThought); ok {
			return v.Thought
		}

	case schema.FuncMemoOnConvo:
		if v, ok := value.(*schema.ConversationMemo); ok {
			return v.Memo
		}

	case schema.FuncGenerateNextConvoLine:
		if v, ok := value.(*schema.NextConversationLine); ok {
			return v.Utterance
		}

	case schema.FuncTextOutput:
		if v, ok := value.(*schema.TextOutput); ok {
			return v.Output
		}
	}

	// 未知标识符或类型不匹配：原样返回完整字段表
	return fieldMap(value)
}

// utterancePairs 会话转为 [说话人, 内容] 对
func utterancePairs(utterances []schema.ConversationUtterance) [][]string {
	out := make([][]string, 0, len(utterances))
	for _, u := range utterances {
		out = append(out, []string{u.Speaker, u.Utterance})
	}
	return out
}

// fieldMap 把类型化的值转为字段表
func fieldMap(value any) any {
	raw, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return value
	}
	return m
}
