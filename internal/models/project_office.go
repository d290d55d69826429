package models

// ProjectOffice описывает проектный офис: набор классов и мероприятий под руководством одного учителя.
type ProjectOffice struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Title             string  `gorm:"size:255;not null" json:"title"`
	Description       string  `json:"description,omitempty"`
	LogoURL           string  `gorm:"size:500" json:"logo_url,omitempty"`
	IsActive          bool    `gorm:"default:true;not null" json:"is_active"`
	LeaderUID         *uint   `gorm:"index" json:"leader_uid,omitempty"`
	Leader            *User   `gorm:"foreignKey:LeaderUID" json:"leader,omitempty"`
	AccessibleClasses []Group `gorm:"many2many:project_office_groups;" json:"accessible_classes,omitempty"`
	AccessibleEvents  []Event `gorm:"many2many:project_office_events;" json:"accessible_events,omitempty"`
}

// ProjectOfficeEvent это строка связующей таблицы проектного офиса и мероприятия с флагом важности.
type ProjectOfficeEvent struct {
	ProjectOfficeID uint `gorm:"primaryKey"`
	EventID         uint `gorm:"primaryKey"`
	IsImportant     bool `gorm:"default:false;not null"`
}

func (ProjectOfficeEvent) TableName() string { return "project_office_events" }

// ClassNames возвращает названия доступных классов. Классы должны быть предзагружены.
func (po *ProjectOffice) ClassNames() []string {
	names := make([]string, 0, len(po.AccessibleClasses))
	for _, g := range po.AccessibleClasses {
		names = append(names, g.Name)
	}
	return names
}
