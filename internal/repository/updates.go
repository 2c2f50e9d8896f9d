package repository

import (
	"fmt"

	pkgerrors "clinic-admin/pkg/errors"
)

// checkColumns 局部更新只允许实体白名单内的列
// 列名来自 Service 层的显式字段映射，这里做最后一道校验
func checkColumns(fields map[string]interface{}, allowed []string) error {
	for col := range fields {
		if !containsColumn(allowed, col) {
			return fmt.Errorf("%w: %s", pkgerrors.ErrUnknownColumn, col)
		}
	}
	return nil
}

func containsColumn(cols []string, col string) bool {
	for _, c := range cols {
		if c == col {
			return true
		}
	}
	return false
}
