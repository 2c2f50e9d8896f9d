package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// ErrUnknownColumn 局部更新中出现了实体白名单之外的列
var ErrUnknownColumn = errors.New("不允许更新的字段")
