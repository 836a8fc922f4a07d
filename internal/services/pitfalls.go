package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"stackpulse/internal/models"

	"gorm.io/gorm"
)

// 多线程相关标签，命中其一即进入候选集
var multithreadingTags = []string{
	"java",
	"multithreading",
	"concurrency",
	"java-threads",
	"thread-safety",
	"synchronization",
}

type pitfallCategory struct {
	name     string
	patterns []*regexp.Regexp
}

func newPitfallCategory(name string, patterns ...string) pitfallCategory {
	c := pitfallCategory{name: name}
	for _, p := range patterns {
		c.patterns = append(c.patterns, regexp.MustCompile("(?i)"+p))
	}
	return c
}

// matches 任一模式命中即算一次
func (c pitfallCategory) matches(text string) bool {
	for _, p := range c.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// 固定的陷阱分类表，顺序即展示顺序；包外只读
var pitfallCategories = []pitfallCategory{
	newPitfallCategory("Race Conditions",
		`\brace condition(s)?\b`,
		`\bdata race(s)?\b`,
		`\blost update(s)?\b`,
		`\bcheck-then-act\b`,
		`\bread-?modify-?write\b`),
	newPitfallCategory("Deadlocks",
		`\bdeadlock(s)?\b`,
		`\bcircular wait\b`,
		`\block ordering\b`,
		`\blocked forever\b`,
		`\bwait\s+forever\b`),
	newPitfallCategory("Memory Consistency / Visibility",
		`\bvolatile\b`,
		`\bhappens[-\s]?before\b`,
		`\bvisibility issue(s)?\b`,
		`\bmemory barrier\b`,
		`\bMemoryConsistencyError\b`),
	newPitfallCategory("Thread Safety (General)",
		`\bthread[-\s]?safe\b`,
		`\bsynchronized\b`,
		`\bReentrantLock\b`,
		`\bConcurrentHashMap\b`,
		`\bAtomic(?:Integer|Long|Boolean|Reference)\b`),
	newPitfallCategory("Concurrent Modification",
		`\bConcurrentModificationException\b`,
		`\bmodify while iterat(ing|ion)\b`,
		`\bfail[-\s]?fast iterator\b`,
		`\bIterator\.remove\b`,
		`\bCopyOnWriteArrayList\b`),
	newPitfallCategory("Thread Lifecycle (Start/Join issues)",
		`\bIllegalThreadStateException\b`,
		`\bThread\.start\b`,
		`\bthread already started\b`,
		`\bThread\.join\b`,
		`\bInterruptedException\b`),
}

// PitfallCategories 分类名称（固定顺序）
func PitfallCategories() []string {
	names := make([]string, len(pitfallCategories))
	for i, c := range pitfallCategories {
		names[i] = c.name
	}
	return names
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type PitfallResponse struct {
	Top        int             `json:"top"`
	Categories []CategoryCount `json:"categories"`
}

// PitfallService 多线程陷阱关键词统计
type PitfallService struct {
	db *gorm.DB
}

func NewPitfallService(db *gorm.DB) *PitfallService {
	return &PitfallService{db: db}
}

// Analyze 统计候选问题中各分类的命中数；top 需已通过 ResolvePitfallTop 校验
func (s *PitfallService) Analyze(ctx context.Context, top int) (PitfallResponse, error) {
	counts := make([]int, len(pitfallCategories))

	ids, err := questionIDsWithAnyTag(ctx, s.db, multithreadingTags)
	if err != nil {
		return PitfallResponse{}, err
	}

	err = forEachChunk(ids, loadChunkSize, func(chunk []int64) error {
		var questions []models.Question
		if err := s.db.WithContext(ctx).Select("id", "title", "body").
			Where("id IN ?", chunk).Find(&questions).Error; err != nil {
			return fmt.Errorf("load questions: %w", err)
		}
		for _, q := range questions {
			countPitfalls(q.Title+" "+q.Body, counts)
		}
		return nil
	})
	if err != nil {
		return PitfallResponse{}, err
	}

	return PitfallResponse{Top: top, Categories: rankCategories(counts, top)}, nil
}

// countPitfalls 每个分类对同一段文本最多计一次
func countPitfalls(text string, counts []int) {
	for i, c := range pitfallCategories {
		if c.matches(text) {
			counts[i]++
		}
	}
}

// rankCategories 按次数降序、名称升序排序后截取前 top 个
func rankCategories(counts []int, top int) []CategoryCount {
	ranked := make([]CategoryCount, len(pitfallCategories))
	for i, c := range pitfallCategories {
		ranked[i] = CategoryCount{Category: c.name, Count: counts[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return strings.Compare(ranked[i].Category, ranked[j].Category) < 0
	})
	if top < 0 {
		top = 0
	}
	if top < len(ranked) {
		ranked = ranked[:top]
	}
	return ranked
}
