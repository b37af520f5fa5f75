package service

import (
	"fmt"
	"strconv"

	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/models"
)

const uncategorizedGroupName = "variations"

// SelectionViolationError 变体选择超出分组上限
type SelectionViolationError struct {
	CategoryName string
	Limit        int
}

func (e *SelectionViolationError) Error() string {
	return fmt.Sprintf("Select at most %d option(s) in %s.", e.Limit, e.CategoryName)
}

// Is 使 errors.Is(err, ErrVariationSelectionLimit) 成立
func (e *SelectionViolationError) Is(target error) bool {
	return target == ErrVariationSelectionLimit
}

// selectionCounter 单个分组的计数器
type selectionCounter struct {
	key   string
	name  string
	limit int
	count int
}

// ValidateVariationSelection 校验所选变体是否超出各分组上限
// 按选择顺序扫描，返回遇到的第一个违规分组
func ValidateVariationSelection(selected []models.Variation) error {
	counters := make([]*selectionCounter, 0, len(selected))
	for _, variation := range selected {
		key, name, limit := selectionGroupOf(variation)

		var counter *selectionCounter
		for _, existing := range counters {
			if existing.key == key {
				counter = existing
				break
			}
		}
		if counter == nil {
			counter = &selectionCounter{key: key, name: name, limit: limit}
			counters = append(counters, counter)
		}

		counter.count++
		if counter.count > counter.limit {
			return &SelectionViolationError{CategoryName: counter.name, Limit: counter.limit}
		}
	}
	return nil
}

func selectionGroupOf(variation models.Variation) (string, string, int) {
	if variation.CategoryID == nil {
		return "none", uncategorizedGroupName, constants.VariationDefaultLimit
	}
	key := "category:" + strconv.FormatUint(uint64(*variation.CategoryID), 10)
	name := uncategorizedGroupName
	limit := constants.VariationDefaultLimit
	if variation.Category != nil {
		if variation.Category.Name != "" {
			name = variation.Category.Name
		}
		if variation.Category.MaxChoices > 0 {
			limit = variation.Category.MaxChoices
		}
	}
	return key, name, limit
}
