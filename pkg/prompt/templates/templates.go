// Package templates 提供内置的认知函数提示词模板
// 模板统一管理，方便其他模块引用和定制
//
// 模板格式：!<INPUT n>! 占位符按序号替换为输入，
// <commentblockmarker>###</commentblockmarker> 之前是模板注释。
// 每个模板末尾附带结构化输出说明和示例 JSON
package templates

// WakeUpHour 起床时刻
// 输入：0 角色描述 1 生活方式 2 名字
const WakeUpHour = `wake_up_hour
variables:
!<INPUT 0>! -- identity stable set
!<INPUT 1>! -- lifestyle
!<INPUT 2>! -- persona first name
<commentblockmarker>###</commentblockmarker>
!<INPUT 0>!

In general, !<INPUT 1>!
When does !<INPUT 2>! wake up today?

Return a JSON object with the wake up hour.
The hour must be between 0-23 (e.g., 6 for 6am, 14 for 2pm).
Example: {"wake_up_hour": 8}`

// DailyPlan 日计划
// 输入：0 角色描述 1 生活方式 2 当前日期 3 名字 4 起床时刻
const DailyPlan = `daily_plan
variables:
!<INPUT 0>! -- identity stable set
!<INPUT 1>! -- lifestyle
!<INPUT 2>! -- current date
!<INPUT 3>! -- persona first name
!<INPUT 4>! -- wake up hour
<commentblockmarker>###</commentblockmarker>
!<INPUT 0>!

In general, !<INPUT 1>!
Today is !<INPUT 2>!. Describe !<INPUT 3>!'s plan for the whole day, in broad strokes, starting with waking up at !<INPUT 4>!.

Return a JSON object with the daily activities:
{
  "activities": [
    {"activity": "eat breakfast", "time": "7:00 am"},
    {"activity": "work on project", "time": "9:00 am"}
  ]
}

- Include activities with their times throughout the day
- Use natural language for activities
- Times should be in format like "8:00 am" or "2:00 pm"`

// TaskDecomp 任务分解
// 输入：0 角色描述 1 当前计划摘要 2 任务 3 任务总时长（分钟）
const TaskDecomp = `task_decomp
variables:
!<INPUT 0>! -- identity stable set
!<INPUT 1>! -- surrounding schedule
!<INPUT 2>! -- task description
!<INPUT 3>! -- task duration in minutes
<commentblockmarker>###</commentblockmarker>
!<INPUT 0>!

!<INPUT 1>!
In 5 min increments, list the subtasks of "!<INPUT 2>!" (total duration !<INPUT 3>! minutes).

Return a JSON object with the subtasks:
{
  "subtasks": [
    {"description": "review notes", "duration_minutes": 10},
    {"description": "write draft", "duration_minutes": 35}
  ]
}

- Each duration must be a multiple of 5 minutes
- Durations must sum to the total task duration`

// PoignancyEvent 事件强度评分
// 输入：0 名字 1 角色描述 2 事件描述
const PoignancyEvent = `poignancy_event
variables:
!<INPUT 0>! -- persona name
!<INPUT 1>! -- identity stable set
!<INPUT 2>! -- event description
<commentblockmarker>###</commentblockmarker>
Here is a brief description of !<INPUT 0>!:
!<INPUT 1>!

On the scale of 1 to 10, where 1 is purely mundane (e.g., brushing teeth, making bed) and 10 is extremely poignant (e.g., a break up, college acceptance), rate the likely poignancy of the following event for !<INPUT 0>!.

Event: !<INPUT 2>!

Return a JSON object with the rating.
Example: {"rating": 5}`

// DecideToTalk 是否发起对话
// 输入：0 对话双方的上下文 1 当前状态 2 发起方 3 对方
const DecideToTalk = `decide_to_talk
variables:
!<INPUT 0>! -- retrieved context
!<INPUT 1>! -- current status
!<INPUT 2>! -- initiator name
!<INPUT 3>! -- target name
<commentblockmarker>###</commentblockmarker>
!<INPUT 0>!

Right now, !<INPUT 1>!
Would !<INPUT 2>! initiate a conversation with !<INPUT 3>!?

Return a JSON object with the decision ("yes" or "no").
Example: {"decision": "yes"}`

// ExtractKeywords 关键词提取
// 输入：0 描述文本
const ExtractKeywords = `extract_keywords
variables:
!<INPUT 0>! -- description text
<commentblockmarker>###</commentblockmarker>
Extract the keywords (factually descriptive nouns and emotive adjectives) from the following description.

Description: !<INPUT 0>!

Return a JSON object with at most 10 keywords.
Example: {"keywords": ["library", "quiet", "curious"]}`
