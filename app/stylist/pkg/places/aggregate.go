// Package places 合并多个关键词的附近搜索结果：计算距离、按 ID 去重。
package places

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang/geo/s2"

	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/model"
)

// RawPlace 上游搜索返回的一条地点，可选字段用指针表示
type RawPlace struct {
	ID          string
	Name        string
	Address     string
	OpenNow     *bool
	WeekdayText []string
	Rating      *float64
	Location    *s2.LatLng
}

// Batch 一个关键词的搜索结果，保持上游返回顺序
type Batch struct {
	Keyword string
	Places  []RawPlace
}

// MissingLocationError 地点缺少坐标，无法计算距离
type MissingLocationError struct {
	ID      string
	Keyword string
}

func (e *MissingLocationError) Error() string {
	return fmt.Sprintf("place %q from keyword %q has no location", e.ID, e.Keyword)
}

// Aggregate 按 batches 的顺序拼接结果并按 ID 去重，保留第一次出现的记录。
// 返回顺序即首次出现顺序，不按距离或评分排序。
//
// 缺少坐标的记录会被单独剔除，其余记录照常返回；此时 error 非 nil，
// 其中每条被剔除的记录对应一个 *MissingLocationError。
func Aggregate(center s2.LatLng, batches []Batch) ([]model.PlaceRecord, error) {
	var (
		records []model.PlaceRecord
		seen    = make(map[string]struct{})
		errs    []error
	)

	for _, b := range batches {
		for _, p := range b.Places {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			if p.Location == nil {
				errs = append(errs, &MissingLocationError{ID: p.ID, Keyword: b.Keyword})
				continue
			}
			seen[p.ID] = struct{}{}

			records = append(records, model.PlaceRecord{
				ID:               p.ID,
				Name:             p.Name,
				Address:          p.Address,
				DistanceMeters:   DistanceMeters(center, *p.Location),
				IsOpenNow:        p.OpenNow,
				OpeningHoursText: strings.Join(p.WeekdayText, "\n"),
				Rating:           p.Rating,
				SearchKeyword:    b.Keyword,
			})
		}
	}

	if records == nil {
		records = []model.PlaceRecord{}
	}
	return records, errors.Join(errs...)
}
