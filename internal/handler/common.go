package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"go-gin-event-registration/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError 是單一欄位的驗證錯誤
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// 欄位名稱.驗證規則 -> 回傳給使用者的訊息
var fieldMessages = map[string]string{
	"title.required":       "Title is required",
	"description.required": "Description is required",
	"type.required":        "Type is required",
	"location.required":    "Location is required",
	"dateStart.required":   "Start date is required",
	"dateEnd.required":     "End date is required",
	"dateEnd.gtfield":      "End date must be after start date",
	"name.required":        "Name is required",
	"phone.required":       "Phone number is required",
	"shortId.required":     "Registration code is required",
	"status.required":      "Status is required",
	"email.required":       "Please include a valid email",
	"email.email":          "Please include a valid email",
	"password.required":    "Password is required",
	"password.min":         "Please enter a password with 6 or more characters",
	"password.max":         "Password must be at most 72 characters",
}

func init() {
	// 驗證錯誤使用 json 欄位名稱
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// BindJson 綁定 request body；驗證失敗時回傳 {errors: [...]}
func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": translateValidationErrors(verrs)})
			return err
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func translateValidationErrors(verrs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

// parseEventID 解析路徑上的活動 ID；格式錯誤視同找不到活動
func parseEventID(c *gin.Context) (uuid.UUID, bool) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return uuid.Nil, false
	}
	return eventID, true
}

// currentUserID 取得登入者 ID，middleware 未設定時回 401
func currentUserID(c *gin.Context) (int, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token, authorization denied"})
		return 0, false
	}
	return userID, true
}
