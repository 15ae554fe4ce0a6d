package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/joe/pathq/internal/query"
)

var _ = Describe("Model", func() {
	var (
		bridge *EventBridge
		model  Model
	)

	BeforeEach(func() {
		bridge = NewEventBridge()
		model = NewModel(bridge, []string{"."}, func() ([]string, error) {
			return []string{"a.txt"}, nil
		})
	})

	Describe("Event Handling", func() {
		It("updates counters from progress events", func() {
			msg := QueryEventMsg{Event: query.QueryProgress{Visited: 120, Matched: 7}}

			newModel, _ := model.Update(msg)
			updated := newModel.(Model)

			Expect(updated.Visited()).To(Equal(120))
			Expect(updated.Matched()).To(Equal(7))
		})

		It("records traversal errors", func() {
			msg := QueryEventMsg{Event: query.QueryError{Path: "bad", Err: errors.New("denied")}}

			newModel, _ := model.Update(msg)
			updated := newModel.(Model)

			Expect(updated.errors).To(HaveLen(1))
			Expect(updated.errors[0]).To(ContainSubstring("bad"))
		})

		It("keeps only the most recent errors", func() {
			current := model
			for i := 0; i <= MaxVisibleErrors+2; i++ {
				msg := QueryEventMsg{Event: query.QueryError{Path: "p", Err: errors.New("e")}}
				newModel, _ := current.Update(msg)
				current = newModel.(Model)
			}

			Expect(len(current.errors)).To(Equal(MaxVisibleErrors))
		})

		It("takes final counts from the completion event", func() {
			msg := QueryEventMsg{Event: query.QueryCompleted{
				Visited: 500,
				Matched: 42,
				Elapsed: time.Second,
			}}

			newModel, _ := model.Update(msg)
			updated := newModel.(Model)

			Expect(updated.Visited()).To(Equal(500))
			Expect(updated.Matched()).To(Equal(42))
		})
	})

	Describe("Completion", func() {
		It("stores results and quits on QueryDoneMsg", func() {
			msg := QueryDoneMsg{Lines: []string{"a.txt", "b.txt"}}

			newModel, cmd := model.Update(msg)
			updated := newModel.(Model)

			Expect(updated.Lines()).To(Equal([]string{"a.txt", "b.txt"}))
			Expect(updated.Err()).To(BeNil())
			Expect(cmd).NotTo(BeNil())
		})

		It("surfaces a run error", func() {
			msg := QueryDoneMsg{Err: errors.New("boom")}

			newModel, _ := model.Update(msg)
			updated := newModel.(Model)

			Expect(updated.Err()).To(MatchError("boom"))
		})

		It("renders nothing once done", func() {
			newModel, _ := model.Update(QueryDoneMsg{})
			updated := newModel.(Model)

			Expect(updated.View()).To(BeEmpty())
		})
	})

	Describe("Cancellation", func() {
		It("marks the model cancelled on ctrl+c", func() {
			msg := tea.KeyMsg{Type: tea.KeyCtrlC}

			newModel, cmd := model.Update(msg)
			updated := newModel.(Model)

			Expect(updated.Cancelled()).To(BeTrue())
			Expect(cmd).NotTo(BeNil())
		})
	})

	Describe("View", func() {
		It("shows the roots and counters while running", func() {
			newModel, _ := model.Update(QueryEventMsg{Event: query.QueryProgress{Visited: 12, Matched: 3}})
			updated := newModel.(Model)

			view := updated.View()

			Expect(view).To(ContainSubstring("pathq"))
			Expect(view).To(ContainSubstring("12"))
			Expect(view).To(ContainSubstring("3"))
		})
	})
})

var _ = Describe("EventBridge", func() {
	It("forwards events as tea messages", func() {
		bridge := NewEventBridge()
		defer bridge.Close()

		bridge.Emit(query.QueryProgress{Visited: 10, Matched: 2})

		msg := <-bridge.Subscribe()
		wrapped, ok := msg.(QueryEventMsg)
		Expect(ok).To(BeTrue())

		progress, ok := wrapped.Event.(query.QueryProgress)
		Expect(ok).To(BeTrue())
		Expect(progress.Visited).To(Equal(10))
	})

	It("drops events instead of blocking when full", func() {
		bridge := NewEventBridge()
		defer bridge.Close()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 500; i++ {
				bridge.Emit(query.QueryProgress{Visited: i})
			}
		}()

		Eventually(done).Should(BeClosed())
	})

	It("ignores emits after close", func() {
		bridge := NewEventBridge()
		bridge.Close()

		Expect(func() {
			bridge.Emit(query.QueryProgress{})
		}).NotTo(Panic())
	})

	It("survives closing while an emitter is still running", func() {
		// A cancelled TUI closes the bridge while the query goroutine is
		// mid-traversal and still emitting.
		bridge := NewEventBridge()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 100000; i++ {
				bridge.Emit(query.QueryProgress{Visited: i})
			}
		}()

		bridge.Close()

		Eventually(done).Should(BeClosed())
	})
})

func TestTUI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TUI Suite")
}
