package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/you-humble/computer-shop/internal/repository/csvfile"
	partrepo "github.com/you-humble/computer-shop/internal/repository/part"
	receiptrepo "github.com/you-humble/computer-shop/internal/repository/receipt"
	userrepo "github.com/you-humble/computer-shop/internal/repository/user"
	authservice "github.com/you-humble/computer-shop/internal/service/auth"
	shopservice "github.com/you-humble/computer-shop/internal/service/shop"
	"github.com/you-humble/computer-shop/internal/transport/cli"
)

const seedCatalog = `CPU,AMD Ryzen 5,119.99,6,3.2,2
GraphicsCard,NVIDIA GeForce 1080,925,1607,8,1
Memory,Corsair Vengeance,239,16,3000,DDR4,3
Storage,Seagate Barracuda,60,1000,HDD,OUT OF STOCK
Storage,Samsung 970 EVO,129.5,500,SSD,4
`

// session wires the real services over files in a temp dir and replays scripted input.
type session struct {
	ctx         context.Context
	dir         string
	catalogPath string
	usersPath   string
	receiptsDir string
}

func newSession() *session {
	dir := GinkgoT().TempDir()
	s := &session{
		ctx:         context.Background(),
		dir:         dir,
		catalogPath: filepath.Join(dir, "database.csv"),
		usersPath:   filepath.Join(dir, "users.csv"),
		receiptsDir: filepath.Join(dir, "receipts"),
	}
	Expect(os.WriteFile(s.catalogPath, []byte(seedCatalog), 0o600)).To(Succeed())
	return s
}

// run replays lines as user input and returns everything written to the screen.
func (s *session) run(lines ...string) string {
	auth := authservice.NewAuthService(userrepo.NewUserRepository(s.usersPath), 6, authservice.WithHashCost(bcrypt.MinCost))
	svc := shopservice.NewShopService(
		partrepo.NewPartRepository(s.catalogPath),
		receiptrepo.NewReceiptRepository(s.receiptsDir),
		auth,
		time.Second,
	)
	Expect(svc.Start(s.ctx)).To(Succeed())

	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer

	h := cli.NewHandler(svc, in, &out, false)
	Expect(h.Run(s.ctx)).To(Succeed())
	Expect(svc.Shutdown(s.ctx)).To(Succeed())

	return out.String()
}

func (s *session) catalog() [][]string {
	records, err := csvfile.Read(s.ctx, s.catalogPath)
	Expect(err).NotTo(HaveOccurred())
	return records
}

func (s *session) stockOf(name string) string {
	for _, rec := range s.catalog() {
		if rec[1] == name {
			return rec[len(rec)-1]
		}
	}
	Fail("part " + name + " not in catalog file")
	return ""
}

var _ = Describe("Shop CLI", func() {
	var s *session

	BeforeEach(func() {
		s = newSession()
	})

	Context("Main Menu", func() {
		It("lists the database and says goodbye", func() {
			out := s.run("2", "4")

			Expect(out).To(ContainSubstring("---- Main Menu ----\n1. New Wish List\n2. List Database\n3. Add Part To Database\n4. Close\n"))
			Expect(out).To(ContainSubstring("---- Part List ----"))
			Expect(out).To(ContainSubstring("AMD Ryzen 5: 6 cores @ 3.2GHz for $119.99 (x2)"))
			Expect(out).To(ContainSubstring("Seagate Barracuda: 1000GB HDD for $60.00 (OUT OF STOCK)"))
			Expect(out).To(HaveSuffix("See you again soon.\n"))
		})

		It("re-prompts on invalid options", func() {
			out := s.run("abc", "9", "0", "4")

			Expect(out).To(ContainSubstring(`"abc" is not a number.`))
			Expect(out).To(ContainSubstring("9 is outside range 1 - 4."))
			Expect(out).To(ContainSubstring("0 is outside range 1 - 4."))
			Expect(strings.Count(out, "Enter an option (1-4): ")).To(Equal(4))
		})

		It("ends quietly when input runs out", func() {
			out := s.run("2")

			Expect(out).To(ContainSubstring("---- Part List ----"))
			Expect(out).NotTo(ContainSubstring("See you again soon."))
		})
	})

	Context("Add Part To Database", func() {
		It("adds a new part after re-prompting bad fields and saves it on shutdown", func() {
			out := s.run(
				"3",
				"1", "Intel Core i5", "cheap", "199.99", "six", "0", "6", "2.9",
				"5",
				"4",
			)

			Expect(out).To(ContainSubstring("---- Part Types ----\n1. CPU\n2. Graphics Card\n3. Memory\n4. Storage\n5. Back\n"))
			Expect(out).To(ContainSubstring(`"cheap" is not a price`))
			Expect(out).To(ContainSubstring(`"six" is not a whole number`))
			Expect(out).To(ContainSubstring("cores must be greater than 0"))
			Expect(out).To(ContainSubstring("Added Intel Core i5 to the database."))

			Expect(s.catalog()).To(ContainElement([]string{"CPU", "Intel Core i5", "199.99", "6", "2.9", "1"}))
		})

		It("bumps the stock of an identical part", func() {
			out := s.run(
				"3",
				"4", "Samsung 970 EVO", "129.50", "500", "ssd",
				"5",
				"4",
			)

			Expect(out).To(ContainSubstring("Samsung 970 EVO is already in the database, stock increased to 5."))
			Expect(s.stockOf("Samsung 970 EVO")).To(Equal("5"))
		})

		It("rejects a part that clashes with a listed one", func() {
			out := s.run(
				"3",
				"3", "Corsair Vengeance", "199", "32", "3200", "DDR5",
				"5",
				"4",
			)

			Expect(out).To(ContainSubstring("Invalid Memory! Try again with different arguments."))
			Expect(s.stockOf("Corsair Vengeance")).To(Equal("3"))
		})
	})

	Context("New Wish List", func() {
		register := []string{"1", "gary", "gary@example.com", "secret1", "secret1"}

		It("reserves, shows and purchases a wish list", func() {
			script := append([]string{}, register...)
			script = append(script,
				"1", "secret1", "AMD Ryzen 5",
				"1", "secret1", "AMD Ryzen 5",
				"1", "secret1", "AMD Ryzen 5",
				"3", "secret1",
				"4", "secret1",
				"4",
			)
			out := s.run(script...)

			Expect(out).To(ContainSubstring("Added AMD Ryzen 5 to your wish list (x2)."))
			Expect(out).To(ContainSubstring("Not enough of AMD Ryzen 5 in stock!"))
			Expect(out).To(ContainSubstring("---- gary's Wish List ----\nAMD Ryzen 5: 6 cores @ 3.2GHz for $119.99 (x2)\n--------------------\n$239.98\nNot a valid computer"))
			Expect(out).To(ContainSubstring("Thank you for your purchase! 2 item(s) for $239.98."))

			Expect(s.stockOf("AMD Ryzen 5")).To(Equal("OUT OF STOCK"))

			receipt, err := csvfile.Read(s.ctx, filepath.Join(s.receiptsDir, "gary.csv"))
			Expect(err).NotTo(HaveOccurred())
			Expect(receipt).To(Equal([][]string{{"CPU", "AMD Ryzen 5", "119.99", "6", "3.2", "2"}}))
		})

		It("keeps the wish list open when the receipt cannot be written", func() {
			Expect(os.WriteFile(s.receiptsDir, []byte("not a directory"), 0o600)).To(Succeed())

			script := append([]string{}, register...)
			script = append(script,
				"1", "secret1", "AMD Ryzen 5",
				"4", "secret1",
				"3", "secret1",
				"5", "secret1",
				"4",
			)
			out := s.run(script...)

			Expect(out).To(ContainSubstring("Something went wrong:"))
			Expect(out).NotTo(ContainSubstring("Thank you for your purchase!"))
			Expect(strings.Count(out, "---- gary's Wish List ----")).To(Equal(2))
			Expect(s.stockOf("AMD Ryzen 5")).To(Equal("2"))
		})

		It("refuses wish list actions with a wrong password", func() {
			script := append([]string{}, register...)
			script = append(script,
				"1", "wrong-password",
				"5", "secret1",
				"4",
			)
			out := s.run(script...)

			Expect(out).To(ContainSubstring("Invalid password."))
			Expect(out).NotTo(ContainSubstring("Enter the name of the part to add: "))
		})

		It("returns reserved stock when the wish list is closed", func() {
			script := append([]string{}, register...)
			script = append(script,
				"1", "secret1", "Corsair Vengeance",
				"1", "secret1", "Corsair Vengeance",
				"2", "secret1", "Intel Core i9",
				"5", "secret1",
				"4",
			)
			out := s.run(script...)

			Expect(out).To(ContainSubstring("Could not find Intel Core i9!"))
			Expect(s.stockOf("Corsair Vengeance")).To(Equal("3"))
			Expect(filepath.Join(s.receiptsDir, "gary.csv")).NotTo(BeAnExistingFile())
		})

		It("validates the new customer before opening a wish list", func() {
			out := s.run(
				"1",
				"gary oak", "gary",
				"not-an-email", "secret1", "secret1",
				"gary", "gary@example.com", "secret1", "secret2", "secret1", "secret1",
				"5", "secret1",
				"4",
			)

			Expect(out).To(ContainSubstring("username cannot contain spaces"))
			Expect(out).To(ContainSubstring("Invalid email."))
			Expect(out).To(ContainSubstring("Passwords do not match."))
			Expect(out).To(ContainSubstring("---- Wish List ----"))
		})

		It("signs a returning customer in by email and password", func() {
			s.run(append(append([]string{}, register...), "5", "secret1", "4")...)

			out := s.run(
				"1",
				"gary", "ash@example.com", "secret1", "secret1", "y",
				"gary", "gary@example.com", "secret1", "secret1", "",
				"3", "secret1",
				"5", "secret1",
				"4",
			)

			Expect(out).To(ContainSubstring("Are you a returning customer? [Y/n] "))
			Expect(out).To(ContainSubstring("Invalid email."))
			Expect(out).To(ContainSubstring("---- gary's Wish List ----"))

			users, err := csvfile.Read(s.ctx, s.usersPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(1))
		})
	})
})
