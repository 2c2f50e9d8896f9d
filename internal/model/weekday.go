package model

import "strconv"

// Weekday 星期参考表 — 对应 weekdays（迁移时写入 7 行，应用只读）
type Weekday struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false"           json:"id"`
	Name string `gorm:"type:varchar(20);not null;uniqueIndex"    json:"name"`
}

// TableName 指定表名
func (Weekday) TableName() string { return "weekdays" }

// UnknownWeekdayOrdinal 无法识别的星期名称统一排在最后
const UnknownWeekdayOrdinal = 8

// weekdayOrdinals 周一为一周第一天；排序只看此表，不依赖字符串排序规则
var weekdayOrdinals = map[string]int{
	"Monday":    1,
	"Tuesday":   2,
	"Wednesday": 3,
	"Thursday":  4,
	"Friday":    5,
	"Saturday":  6,
	"Sunday":    7,
}

// WeekdayNames 按序号排列的标准星期名称
var WeekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayOrdinal 返回星期名称的序号，未知名称返回 UnknownWeekdayOrdinal
func WeekdayOrdinal(name string) int {
	if n, ok := weekdayOrdinals[name]; ok {
		return n
	}
	return UnknownWeekdayOrdinal
}

// WeekdayOrdinalSQL 与 WeekdayOrdinal 等价的 SQL 表达式，col 为星期名称列
func WeekdayOrdinalSQL(col string) string {
	expr := "CASE " + col
	for _, name := range WeekdayNames {
		expr += " WHEN '" + name + "' THEN " + strconv.Itoa(weekdayOrdinals[name])
	}
	return expr + " ELSE " + strconv.Itoa(UnknownWeekdayOrdinal) + " END"
}

