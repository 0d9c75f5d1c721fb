package ntuple

import (
	"fmt"
	"sort"
	"strings"
)

// 预设表达式注册表
// 表达式不从字符串解析：命令行与配置只引用这里的名称，
// 表达式本身在代码中以类型化形式构造
var presets = map[string]func() Expr{
	// 无筛选
	"none": func() Expr { return nil },

	// MC 事例权重本身
	"mc-weight": func() Expr { return Field("weight_mc") },

	// 仅保留正权重事例
	"positive-mc-weight": func() Expr { return GT(Field("weight_mc"), Const(0)) },

	// 单轻子 5j3b 区域
	"1l-5j3b": func() Expr {
		return And(
			GE(Field("nJets"), Const(5)),
			GE(Field("nBTags"), Const(3)),
		)
	},

	// Run-2 逐事例归一化权重乘积，按 run number 分段取积分亮度
	"run2-lumi-weight": func() Expr {
		return Mul(
			Field("weight_normalise"),
			Field("weight_mc"),
			Field("weight_pileup"),
			Field("weight_leptonSF"),
			Field("weight_jvt"),
			Field("weight_bTagSF_DL1r_Continuous"),
			Piecewise(Field("randomRunNumber"), 58791.6,
				PiecewiseCase{UpTo: 311481, Value: 36646.74},
				PiecewiseCase{UpTo: 340453, Value: 44630.6},
			),
		)
	},
}

// Preset 按名称返回预设表达式；空名称等价于 none
func Preset(name string) (Expr, error) {
	if name == "" {
		return nil, nil
	}
	f, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown expression preset %q, available: %s",
			name, strings.Join(PresetNames(), ", "))
	}
	return f(), nil
}

// PresetNames 返回全部预设名称，按字典序
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
