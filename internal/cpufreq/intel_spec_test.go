package cpufreq_test

import (
	"github.com/elcritch/power-control/internal/cpufreq"
	"github.com/elcritch/power-control/internal/sysfs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("IntelPolicy", func() {
	var fake *fakeAttrs
	var policy *cpufreq.IntelPolicy

	newPolicy := func() *cpufreq.IntelPolicy {
		return cpufreq.NewIntelPolicy(
			cpufreq.NewResolver(fake),
			cpufreq.NewGovernors(fake),
			cpufreq.NewParams(fake),
		)
	}

	BeforeEach(func() {
		fake = newFakeAttrs()
	})

	Context("precondition", func() {
		It("should refuse the override while governors are mixed, writing nothing", func() {
			fake.addCPU("cpu0", "performance", "performance powersave", "1000000", "700000", "1000000")
			fake.addCPU("cpu1", "powersave", "performance powersave", "600000", "600000", "1000000")
			policy = newPolicy()

			_, err := policy.SetMaxFrequency(900000)
			Expect(err).To(MatchError(cpufreq.ErrNonUniformGovernors))
			Expect(fake.writes).To(BeZero())
		})

		It("should refuse a uniform governor other than performance", func() {
			fake.addCPU("cpu0", "powersave", "performance powersave", "600000", "600000", "1000000")
			fake.addCPU("cpu1", "powersave", "performance powersave", "600000", "600000", "1000000")
			policy = newPolicy()

			_, err := policy.SetMaxFrequency(900000)
			Expect(err).To(MatchError(cpufreq.ErrNonUniformGovernors))
			Expect(fake.writes).To(BeZero())
		})

		It("should refuse the override when no cpus are discovered", func() {
			fake.entries = []string{"cpufreq", "hotplug"}
			policy = newPolicy()

			_, err := policy.SetMaxFrequency(900000)
			Expect(err).To(MatchError(cpufreq.ErrNonUniformGovernors))
			Expect(fake.writes).To(BeZero())
		})

		It("should reject a negative frequency before touching the tree", func() {
			fake.addCPU("cpu0", "performance", "performance powersave", "1000000", "700000", "1000000")
			policy = newPolicy()

			_, err := policy.SetMaxFrequency(-1)
			Expect(err).To(MatchError(cpufreq.ErrInvalidArgument))
			Expect(fake.writes).To(BeZero())
		})

		It("should surface a governor read failure as a call failure", func() {
			fake.addCPU("cpu0", "performance", "performance powersave", "1000000", "700000", "1000000")
			fake.entries = append(fake.entries, "cpu1") // cpu1 has no attribute files
			policy = newPolicy()

			_, err := policy.SetMaxFrequency(900000)
			Expect(err).To(MatchError(sysfs.ErrNotFound))
			Expect(fake.writes).To(BeZero())
		})
	})

	Context("application", func() {
		It("should write the frequency to every cpu and report per-cpu success", func() {
			fake.addCPU("cpu0", "performance", "performance powersave", "1000000", "700000", "1000000")
			fake.addCPU("cpu1", "performance", "performance powersave", "1000000", "700000", "1000000")
			policy = newPolicy()

			results, err := policy.SetMaxFrequency(900000)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
			Expect(results[cpufreq.CPU(0)]).To(Succeed())
			Expect(results[cpufreq.CPU(1)]).To(Succeed())
			Expect(fake.files["cpu0/cpufreq/scaling_max_freq"]).To(Equal("900000"))
			Expect(fake.files["cpu1/cpufreq/scaling_max_freq"]).To(Equal("900000"))
		})

		It("should isolate one cpu's write failure from the others", func() {
			fake.addCPU("cpu0", "performance", "performance powersave", "1000000", "700000", "1000000")
			fake.addCPU("cpu1", "performance", "performance powersave", "1000000", "700000", "1000000")
			fake.failWrites["cpu0/cpufreq/scaling_max_freq"] = sysfs.ErrPermission
			policy = newPolicy()

			results, err := policy.SetMaxFrequency(900000)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[cpufreq.CPU(0)]).To(MatchError(sysfs.ErrPermission))
			Expect(results[cpufreq.CPU(1)]).To(Succeed())
			Expect(fake.files["cpu1/cpufreq/scaling_max_freq"]).To(Equal("900000"))
		})
	})
})
