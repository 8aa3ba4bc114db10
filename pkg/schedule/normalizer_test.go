package schedule

import (
	"reflect"
	"testing"
)

func TestNormalize_Underflow(t *testing.T) {
	// 时长不足：向下取整后用最后一条补齐
	got := Normalize([]Subtask{
		{Description: "wake up", Minutes: 7},
		{Description: "shower", Minutes: 8},
	}, 15, "morning routine")

	want := []Subtask{
		{Description: "wake up", Minutes: 5},
		{Description: "shower", Minutes: 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalize_Overflow(t *testing.T) {
	// 超长：截断到目标时长
	got := Normalize([]Subtask{
		{Description: "paint", Minutes: 200},
	}, 60, "painting")

	want := []Subtask{
		{Description: "paint", Minutes: 60},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalize_OverflowTailMerge(t *testing.T) {
	// 截断后尾部最多 5 格被截断点的任务覆写，
	// 避免日程以一小截被砍断的任务结尾
	got := Normalize([]Subtask{
		{Description: "sketch", Minutes: 25},
		{Description: "paint", Minutes: 30},
		{Description: "clean brushes", Minutes: 30},
	}, 58, "painting")

	want := []Subtask{
		{Description: "sketch", Minutes: 25},
		{Description: "paint", Minutes: 28},
		{Description: "clean brushes", Minutes: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	// 空输入：以兜底描述合成整段
	got := Normalize(nil, 30, "relax")

	want := []Subtask{
		{Description: "relax", Minutes: 30},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalize_AllRoundedToZero(t *testing.T) {
	// 所有时长取整到 0：整条丢弃后等同空输入
	got := Normalize([]Subtask{
		{Description: "blink", Minutes: 2},
		{Description: "sigh", Minutes: 4},
	}, 20, "idle")

	want := []Subtask{
		{Description: "idle", Minutes: 20},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalize_ZeroTarget(t *testing.T) {
	got := Normalize([]Subtask{{Description: "work", Minutes: 30}}, 0, "work")
	if got != nil {
		t.Errorf("Normalize() with zero target = %v, want nil", got)
	}
}

func TestNormalize_ExactFit(t *testing.T) {
	// 恰好等于目标时长：原样返回
	input := []Subtask{
		{Description: "read", Minutes: 20},
		{Description: "write", Minutes: 40},
	}
	got := Normalize(input, 60, "study")

	if !reflect.DeepEqual(got, input) {
		t.Errorf("Normalize() = %v, want %v", got, input)
	}
}

func TestNormalize_SumInvariant(t *testing.T) {
	// 输出时长之和必须恰好等于目标总时长
	cases := []struct {
		name     string
		subtasks []Subtask
		target   int
	}{
		{"underflow", []Subtask{{Description: "a", Minutes: 7}}, 60},
		{"overflow", []Subtask{{Description: "a", Minutes: 45}, {Description: "b", Minutes: 45}}, 60},
		{"exact", []Subtask{{Description: "a", Minutes: 30}, {Description: "b", Minutes: 30}}, 60},
		{"empty", nil, 45},
		{"unaligned", []Subtask{{Description: "a", Minutes: 13}, {Description: "b", Minutes: 29}}, 50},
	}

	for _, tc := range cases {
		got := Normalize(tc.subtasks, tc.target, "fallback")
		sum := 0
		for _, st := range got {
			sum += st.Minutes
		}
		if sum != tc.target {
			t.Errorf("%s: sum = %d, want %d (result %v)", tc.name, sum, tc.target, got)
		}
	}
}

func TestNormalize_NoAdjacentDuplicates(t *testing.T) {
	got := Normalize([]Subtask{
		{Description: "walk", Minutes: 10},
		{Description: "walk", Minutes: 15},
		{Description: "rest", Minutes: 5},
	}, 30, "stroll")

	for i := 1; i < len(got); i++ {
		if got[i].Description == got[i-1].Description {
			t.Errorf("adjacent entries share description %q: %v", got[i].Description, got)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	// 对已归一化的输出再归一化应保持不变
	first := Normalize([]Subtask{
		{Description: "cook", Minutes: 23},
		{Description: "eat", Minutes: 41},
	}, 60, "dinner")

	second := Normalize(first, 60, "dinner")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass changed result: %v -> %v", first, second)
	}
}

func TestNormalizeWithTailWidth_ZeroWidth(t *testing.T) {
	// 宽度为 0 时仅截断，不覆写
	got := NormalizeWithTailWidth([]Subtask{
		{Description: "a", Minutes: 30},
		{Description: "b", Minutes: 30},
	}, 45, "task", 0)

	want := []Subtask{
		{Description: "a", Minutes: 30},
		{Description: "b", Minutes: 15},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeWithTailWidth() = %v, want %v", got, want)
	}
}

func TestNormalizeWithTailWidth_WidthExceedsTarget(t *testing.T) {
	// 宽度大于目标时长时覆写整条时间线
	got := NormalizeWithTailWidth([]Subtask{
		{Description: "a", Minutes: 5},
		{Description: "b", Minutes: 20},
	}, 10, "task", 60)

	want := []Subtask{
		{Description: "b", Minutes: 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeWithTailWidth() = %v, want %v", got, want)
	}
}
