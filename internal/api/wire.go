package api

import (
	"bytes"
	"encoding/json"

	"github.com/alexanderramin/planpin/internal/domain"
)

// idRef decodes a reference the backend sends either as a bare ID, as a
// populated object, or as a list of either (only the first is kept).
type idRef struct {
	ID    string
	Title string // taskTitle, when the reference is a populated task
	Name  string // planName or name, when populated
}

func (r *idRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = idRef{}
		return nil
	}
	switch data[0] {
	case '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = idRef{ID: id}
		return nil
	case '[':
		var list []idRef
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*r = idRef{}
		if len(list) > 0 {
			*r = list[0]
		}
		return nil
	}
	var obj struct {
		ID        string `json:"_id"`
		TaskTitle string `json:"taskTitle"`
		PlanName  string `json:"planName"`
		Name      string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = idRef{ID: obj.ID, Title: obj.TaskTitle, Name: domain.CoalesceStr(obj.PlanName, obj.Name)}
	return nil
}

type wirePlan struct {
	ID         string `json:"_id"`
	Project    idRef  `json:"project"`
	PlanCode   string `json:"planCode"`
	PlanName   string `json:"planName"`
	PlanImages string `json:"planImages"`
}

func (w wirePlan) toDomain() *domain.Plan {
	return &domain.Plan{
		ID:        w.ID,
		ProjectID: w.Project.ID,
		Code:      w.PlanCode,
		Name:      w.PlanName,
		ImageURL:  w.PlanImages,
	}
}

type wirePin struct {
	ID   string  `json:"_id"`
	Plan idRef   `json:"plan"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Task *idRef  `json:"task"`
}

func (w wirePin) toDomain() domain.Pin {
	p := domain.Pin{
		ID:       w.ID,
		PlanID:   w.Plan.ID,
		Position: domain.Position{X: w.X, Y: w.Y},
	}
	if w.Task != nil && w.Task.ID != "" {
		p.Task = &domain.TaskRef{ID: w.Task.ID, Title: w.Task.Title}
	}
	return p
}

type createPinBody struct {
	PlanID string  `json:"planId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Task   string  `json:"task"`
}

type wireTask struct {
	ID           string `json:"_id"`
	Project      idRef  `json:"project"`
	TaskTitle    string `json:"taskTitle"`
	TaskDesc     string `json:"taskDesc"`
	TaskCategory string `json:"taskCategory"`
	Plan         idRef  `json:"plan"`
	Persons      idRef  `json:"persons"`
	TaskCreator  idRef  `json:"taskCreator"`
}

func (w wireTask) toDomain() *domain.Task {
	return &domain.Task{
		ID:          w.ID,
		ProjectID:   w.Project.ID,
		Title:       w.TaskTitle,
		Description: w.TaskDesc,
		Category:    w.TaskCategory,
		PlanID:      w.Plan.ID,
		PersonID:    w.Persons.ID,
		CreatorID:   w.TaskCreator.ID,
	}
}

type createTaskBody struct {
	ProjectID    string `json:"projectId"`
	TaskTitle    string `json:"taskTitle"`
	TaskDesc     string `json:"taskDesc"`
	TaskCategory string `json:"taskCategory"`
	Persons      string `json:"persons,omitempty"`
	Plan         string `json:"plan,omitempty"`
	TaskCreator  string `json:"taskCreator,omitempty"`
}

type wireUser struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company idRef  `json:"company"`
}

func (w wireUser) toDomain() domain.User {
	return domain.User{ID: w.ID, Name: w.Name, Email: w.Email, CompanyID: w.Company.ID}
}

type loginBody struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	CompanyID string `json:"companyId"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}
