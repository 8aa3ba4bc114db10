// Package schedule 提供日程归一化算法
//
// 生成服务的算术并不可靠：子任务时长会超出、不足目标总时长，
// 或者不对齐 5 分钟粒度。本包把松散的 (描述, 时长) 列表
// 核对到精确的目标总时长，产出紧凑无空隙的时间线。
// 纯函数，无 I/O，不依赖生成服务
package schedule

// Subtask 子任务记录
type Subtask struct {
	Description string `json:"description"`
	Minutes     int    `json:"duration_minutes"`
}

// Granularity 时长对齐粒度（分钟）
const Granularity = 5

// DefaultTailMergeWidth 超长截断时尾部覆写的默认宽度（分钟）
// 覆写避免日程以一小截被拦腰砍断的无关任务结尾；
// 具体宽度是平滑启发，不是硬性要求，因此可配置
const DefaultTailMergeWidth = 5

// minuteSlot 分钟槽：一分钟时间线单元
// 记录占据它的描述和来源记录的序号
type minuteSlot struct {
	description string
	index       int
}

// Normalize 把子任务列表核对到精确的目标总时长
//
// 算法：
//  1. 每条时长向下取整到 5 分钟的倍数，取整到 0 的记录整条丢弃
//  2. 幸存记录按输入顺序展开成逐分钟的时间线
//  3. 超长：截断到目标长度，再用截断前最后一格的描述覆写
//     尾部最多 tailMergeWidth 格
//  4. 不足：用最后一格的描述补齐；时间线为空时，
//     以 fallbackDesc（未分解的原任务描述）合成全部格子兜底
//  5. 把相邻同描述的格子合并回 (描述, 时长) 列表
//
// 输出不变量：时长之和恰好等于 targetMinutes；
// 相邻两条描述不同；每条时长 >= 1
func Normalize(subtasks []Subtask, targetMinutes int, fallbackDesc string) []Subtask {
	return NormalizeWithTailWidth(subtasks, targetMinutes, fallbackDesc, DefaultTailMergeWidth)
}

// NormalizeWithTailWidth 指定尾部覆写宽度的归一化
func NormalizeWithTailWidth(subtasks []Subtask, targetMinutes int, fallbackDesc string, tailMergeWidth int) []Subtask {
	if targetMinutes <= 0 {
		return nil
	}
	if tailMergeWidth < 0 {
		tailMergeWidth = 0
	}

	// 1+2. 取整并展开成分钟槽
	slots := expand(subtasks)

	switch {
	case len(slots) > targetMinutes:
		// 3. 截断，尾部覆写
		last := slots[targetMinutes-1]
		slots = slots[:targetMinutes]
		width := tailMergeWidth
		if width > targetMinutes {
			width = targetMinutes
		}
		for i := 1; i <= width; i++ {
			slots[len(slots)-i] = last
		}

	case len(slots) < targetMinutes:
		// 4. 补齐或兜底合成
		if len(slots) > 0 {
			last := slots[len(slots)-1]
			for len(slots) < targetMinutes {
				slots = append(slots, last)
			}
		} else {
			slots = make([]minuteSlot, targetMinutes)
			for i := range slots {
				slots[i] = minuteSlot{description: fallbackDesc}
			}
		}
	}

	// 5. 压缩回最短序列
	return compress(slots)
}

// expand 取整到粒度并展开成逐分钟时间线
func expand(subtasks []Subtask) []minuteSlot {
	var slots []minuteSlot
	for i, st := range subtasks {
		minutes := st.Minutes - st.Minutes%Granularity
		if minutes <= 0 {
			continue
		}
		for m := 0; m < minutes; m++ {
			slots = append(slots, minuteSlot{description: st.Description, index: i})
		}
	}
	return slots
}

// compress 合并相邻同描述的格子
func compress(slots []minuteSlot) []Subtask {
	var out []Subtask
	for _, slot := range slots {
		if len(out) > 0 && out[len(out)-1].Description == slot.description {
			out[len(out)-1].Minutes++
		} else {
			out = append(out, Subtask{Description: slot.description, Minutes: 1})
		}
	}
	return out
}
