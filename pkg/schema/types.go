// Package schema 提供结构化输出的类型描述、注册表和校验功能
package schema

// 本文件定义每个认知函数的响应类型
// 字段约束通过 validate tag 声明，JSON Schema 由反射自动生成
// 按认知模块分组：规划、感知、检索、反思、会话、执行

// ----------------------------------------------------------------------------
// 规划模块
// ----------------------------------------------------------------------------

// WakeUpHourResponse 起床时刻
type WakeUpHourResponse struct {
	// WakeUpHour 起床的小时数（0-23）
	WakeUpHour int `json:"wake_up_hour" validate:"gte=0,lte=23"`
}

// DailyPlanActivity 日计划中的一项活动
type DailyPlanActivity struct {
	Activity string `json:"activity" validate:"required"`
	Time     string `json:"time" validate:"required"`
}

// DailyPlanResponse 日计划
type DailyPlanResponse struct {
	Activities []DailyPlanActivity `json:"activities" validate:"required,min=1,dive"`
}

// HourlyScheduleActivity 小时计划中的一项活动
type HourlyScheduleActivity struct {
	Activity        string `json:"activity" validate:"required"`
	StartTime       string `json:"start_time" validate:"required"`
	EndTime         string `json:"end_time" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=1"`
}

// HourlyScheduleResponse 小时计划
type HourlyScheduleResponse struct {
	Activities []HourlyScheduleActivity `json:"activities" validate:"required,min=1,dive"`
}

// Subtask 任务分解中的一个子任务
type Subtask struct {
	Description string `json:"description" validate:"required"`
	// DurationMinutes 时长（分钟），通常为 5 的倍数
	DurationMinutes int `json:"duration_minutes" validate:"gte=1,lte=180"`
}

// TaskDecomposition 任务分解结果
type TaskDecomposition struct {
	Subtasks []Subtask `json:"subtasks" validate:"required,min=1,dive"`
}

// NewDecompScheduleItem 重新分解后计划中的一项
type NewDecompScheduleItem struct {
	Task     string `json:"task" validate:"required"`
	Duration int    `json:"duration" validate:"gte=1"`
}

// NewDecompScheduleResponse 重新分解后的计划
type NewDecompScheduleResponse struct {
	Schedule []NewDecompScheduleItem `json:"schedule" validate:"required,min=1,dive"`
}

// ----------------------------------------------------------------------------
// 感知模块
// ----------------------------------------------------------------------------

// ActionLocation 动作发生位置的三级地址
type ActionLocation struct {
	Sector     string `json:"sector" validate:"required"`
	Arena      string `json:"arena" validate:"required"`
	GameObject string `json:"game_object" validate:"required"`
}

// Pronunciatio 动作的表情表达
type Pronunciatio struct {
	Emoji       string `json:"emoji" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// EventTriple 事件三元组（主语-谓语-宾语）
type EventTriple struct {
	Subject   string `json:"subject" validate:"required"`
	Predicate string `json:"predicate" validate:"required"`
	Object    string `json:"object" validate:"required"`
}

// ActionObjectDescription 对象交互的自然语言描述
type ActionObjectDescription struct {
	Description string `json:"description" validate:"required"`
}

// ----------------------------------------------------------------------------
// 检索与记忆模块
// ----------------------------------------------------------------------------

// KeywordExtractionResponse 关键词提取结果
type KeywordExtractionResponse struct {
	Keywords []string `json:"keywords" validate:"required,min=1,max=10"`
}

// ThoughtResponse 由关键词或会话生成的想法
type ThoughtResponse struct {
	Thought string `json:"thought" validate:"required"`
}

// FocalPoint 陈述中的一个关注焦点
type FocalPoint struct {
	Topic       string `json:"topic" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// FocalPointsResponse 关注焦点提取结果
type FocalPointsResponse struct {
	FocalPoints []FocalPoint `json:"focal_points" validate:"required,min=1,dive"`
}

// Insight 带证据的洞察
type Insight struct {
	Insight  string   `json:"insight" validate:"required"`
	Evidence []string `json:"evidence" validate:"required"`
}

// InsightsResponse 洞察提取结果
type InsightsResponse struct {
	Insights []Insight `json:"insights" validate:"required,min=1,dive"`
}

// ----------------------------------------------------------------------------
// 反思模块
// ----------------------------------------------------------------------------

// PoignancyRating 事件/想法/会话的强度评分
type PoignancyRating struct {
	// Rating 1（平淡）到 10（极其重要）
	Rating    int    `json:"rating" validate:"gte=1,lte=10"`
	Reasoning string `json:"reasoning,omitempty"`
}

// ----------------------------------------------------------------------------
// 会话模块
// ----------------------------------------------------------------------------

// DecisionResponse 是否发起对话/作出反应的决策
type DecisionResponse struct {
	Decision  string `json:"decision" validate:"required,oneof=yes no"`
	Reasoning string `json:"reasoning,omitempty"`
}

// ConversationUtterance 会话中的一句话
type ConversationUtterance struct {
	Speaker   string `json:"speaker" validate:"required"`
	Utterance string `json:"utterance" validate:"required"`
}

// ConversationResponse 生成的会话
type ConversationResponse struct {
	Conversation []ConversationUtterance `json:"conversation" validate:"required,min=1,dive"`
}

// ConversationSummary 会话摘要
type ConversationSummary struct {
	Summary   string   `json:"summary" validate:"required"`
	KeyPoints []string `json:"key_points,omitempty"`
}

// RelationshipSummary 两个角色之间的关系摘要
type RelationshipSummary struct {
	Summary   string `json:"summary" validate:"required"`
	Sentiment string `json:"sentiment,omitempty" validate:"omitempty,oneof=positive neutral negative"`
}

// NextConversationLine 进行中会话的下一句
type NextConversationLine struct {
	Utterance string `json:"utterance" validate:"required"`
}

// InnerThought 听到内容后的内心想法
type InnerThought struct {
	Thought string `json:"thought" validate:"required"`
}

// PlanningThought 关于会话的规划想法
type PlanningThought struct {
	Thought string `json:"thought" validate:"required"`
}

// ConversationMemo 会话备忘
type ConversationMemo struct {
	Memo string `json:"memo" validate:"required"`
}

// AgentChatSummaryIdeas 角色聊天的观点摘要
type AgentChatSummaryIdeas struct {
	Summary string   `json:"summary" validate:"required"`
	Topics  []string `json:"topics" validate:"required"`
}

// AgentChatResponse 角色聊天的完整对话
type AgentChatResponse struct {
	Dialogue []ConversationUtterance `json:"dialogue" validate:"required,min=1,dive"`
}

// ----------------------------------------------------------------------------
// 执行模块
// ----------------------------------------------------------------------------

// SectorResponse 动作发生的 sector
type SectorResponse struct {
	Sector string `json:"sector" validate:"required"`
}

// ArenaResponse 动作发生的 arena
type ArenaResponse struct {
	Arena string `json:"arena" validate:"required"`
}

// GameObjectResponse 动作涉及的对象
type GameObjectResponse struct {
	GameObject string `json:"game_object" validate:"required"`
}

// ----------------------------------------------------------------------------
// 工具类型
// ----------------------------------------------------------------------------

// SummarizeIdeasResponse 陈述观点的摘要
type SummarizeIdeasResponse struct {
	Summary string `json:"summary" validate:"required"`
}

// TextOutput 简单字符串形态的包装类型
// 自由文本请求在边界处被包进这个单字段结构，
// 使其复用与富 Schema 形态完全相同的重试与校验链路
type TextOutput struct {
	Output string `json:"output" validate:"required"`
}
