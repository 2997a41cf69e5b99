// controllers/upload.go
package controllers

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

type CloudinarySignInput struct {
	Params map[string]interface{} `json:"params"`
}

// SignUploadParams produces the signature the image host expects for signed
// uploads: parameter keys sorted lexicographically, concatenated as
// key=value&key=value..., the shared secret appended, then SHA-1 hashed.
// Clients must reproduce the identical sorted-concatenation scheme.
func SignUploadParams(params map[string]interface{}, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, params[k]))
	}
	toSign := strings.Join(parts, "&") + secret

	sum := sha1.Sum([]byte(toSign))
	return hex.EncodeToString(sum[:])
}

// CloudinarySign signs upload parameters for clients whose unsigned upload
// preset is unavailable. The signing secret lives in the environment.
func CloudinarySign(c *gin.Context) {
	var input CloudinarySignInput
	if err := c.ShouldBindJSON(&input); err != nil || len(input.Params) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing params"})
		return
	}

	secret := os.Getenv("CLOUDINARY_API_SECRET")
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate signature"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"signature": SignUploadParams(input.Params, secret)})
}
