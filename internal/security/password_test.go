package security

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("HashPassword", func() {
	It("produces the 4-field encoded format", func() {
		encoded, err := HashPassword("correct horse battery staple")
		Expect(err).NotTo(HaveOccurred())

		parts := strings.Split(encoded, "$")
		Expect(parts).To(HaveLen(4))
		Expect(parts[0]).To(Equal("pbkdf2_sha256"))
		Expect(parts[1]).To(Equal("210000"))
		Expect(parts[2]).NotTo(ContainSubstring("="))
		Expect(parts[3]).NotTo(ContainSubstring("="))
	})

	It("salts every derivation", func() {
		first, err := HashPassword("correct horse battery staple")
		Expect(err).NotTo(HaveOccurred())
		second, err := HashPassword("correct horse battery staple")
		Expect(err).NotTo(HaveOccurred())
		Expect(first).NotTo(Equal(second))
	})

	It("rejects passwords shorter than 8 characters", func() {
		_, err := HashPassword("1234567")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("VerifyPassword", func() {
	It("round-trips any password of at least 8 characters", func() {
		for _, password := range []string{"password", "correct horse battery staple", "פסקת-סיסמה-בעברית"} {
			encoded, err := HashPassword(password)
			Expect(err).NotTo(HaveOccurred())
			Expect(VerifyPassword(password, encoded)).To(BeTrue())
			Expect(VerifyPassword(password+"x", encoded)).To(BeFalse())
		}
	})

	DescribeTable("returns false for malformed stored hashes",
		func(encoded string) {
			Expect(VerifyPassword("password", encoded)).To(BeFalse())
		},
		Entry("empty", ""),
		Entry("too few fields", "pbkdf2_sha256$210000$onlysalt"),
		Entry("too many fields", "pbkdf2_sha256$210000$salt$key$extra"),
		Entry("wrong algorithm tag", "argon2id$210000$c2FsdA$a2V5"),
		Entry("non-numeric iteration count", "pbkdf2_sha256$lots$c2FsdA$a2V5"),
		Entry("zero iteration count", "pbkdf2_sha256$0$c2FsdA$a2V5"),
		Entry("invalid base64 salt", "pbkdf2_sha256$210000$!!!$a2V5"),
		Entry("invalid base64 key", "pbkdf2_sha256$210000$c2FsdA$???"),
	)
})

var _ = Describe("ValidEncodedHash", func() {
	It("accepts the shape produced by HashPassword", func() {
		encoded, err := HashPassword("correct horse battery staple")
		Expect(err).NotTo(HaveOccurred())
		Expect(ValidEncodedHash(encoded)).To(BeTrue())
	})

	It("rejects wrong field counts and foreign algorithm tags", func() {
		Expect(ValidEncodedHash("")).To(BeFalse())
		Expect(ValidEncodedHash("pbkdf2_sha256$210000$salt")).To(BeFalse())
		Expect(ValidEncodedHash("argon2id$210000$salt$key")).To(BeFalse())
	})
})
