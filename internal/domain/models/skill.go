package models

import (
	"regexp"
	"strings"
)

type Skill struct {
	ID             int    `gorm:"primaryKey"`
	Name           string `gorm:"uniqueIndex"`
	NormalizedName string `gorm:"uniqueIndex"`
}

func NewSkill(name string) Skill {
	return Skill{
		Name:           strings.TrimSpace(name),
		NormalizedName: NormalizeSkillName(name),
	}
}

var nonSkillChars = regexp.MustCompile(`[^\p{L}\p{N}+#.]+`)

// NormalizeSkillName keeps letters, digits and the characters that carry
// meaning in skill names ("C++", "C#", "Node.js").
func NormalizeSkillName(name string) string {
	return nonSkillChars.ReplaceAllString(strings.ToLower(name), "")
}

func SkillIDs(skills []Skill) []int {
	ids := make([]int, 0, len(skills))
	for _, skill := range skills {
		ids = append(ids, skill.ID)
	}
	return ids
}
