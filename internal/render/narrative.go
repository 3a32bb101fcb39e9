// internal/render/narrative.go
package render

// Static page copy. Kept as Markdown and converted with goldmark so the
// wording can be edited without touching the template.

const introMarkdown = `This report showcases a full applied ML pipeline to predict **Length of Stay (LOS)** from hospital admission data.

Through **exploratory data analysis (EDA)** we uncovered key hospital patterns:

- A **dominance of gynecology cases** (over 90k patients per physician) shaping overall patient flow. **(This was found to be the most important feature in our model for predicting LOS)**
- A **skewed length-of-stay distribution**, with most patients discharged quickly, but a long-tail of extended stays.
- A clear **age × severity interaction**, where older or higher-severity patients required longer admissions.

While these findings provided valuable context, **EDA alone cannot predict the LOS of an individual admission**. To bridge this gap, we developed a machine learning model that transforms messy hospital data into a **predictive and interpretable tool** for clinicians and administrators.`

const framingMarkdown = `**Framing**: we predict **Length of Stay** to inform bed turnover, discharge planning, and staffing.`

const biasMarkdown = `**Addressing Class Imbalance:** Hospital length of stay data is **highly skewed**, which can cause models to systematically over- or under-predict for different patient groups. To address this, we evaluated performance in **clinically meaningful bins (≤7, 8–14, >14 days)**. This approach revealed hidden bias (e.g., short stays being pulled upward) and ensured that predictions were both **fair and interpretable** for real-world hospital planning.`

const evidenceMarkdown = `### Evidence

- Strongest performance in **8–14 days**
- **≤7 days**: under-recalled (many predicted as 8–14)
- **>14 days**: well-identified but errors larger (more variability)`

const interpretationMarkdown = `### Interpretation

- Skewed targets cause **shrink-to-middle** behavior
- Short stays get pulled upward; long stays vary more, so absolute error rises
- Overall fit is strong, but **calibration** differs by LOS range`

const actionMarkdown = `### Action

- **Normalize skewed features** (e.g., log-transform deposits, scale room counts)
- Add **regularization** (Ridge/Lasso) to reduce overfitting on correlated predictors
- **Balance short-stay samples** with class weights or resampling`

const predictorsMarkdown = `Tree-based **feature importance** highlights the following predictors and directions of effect:`

const outcomeMarkdown = `**Key outcome:** The model reached strong performance (R² ≈ %s).

- Best results were for patients staying **8–14 days**.
- By grouping predictions into **clear clinical ranges (≤7, 8–14, >14 days)**, results become easier to interpret and directly usable for hospital planning.`

const recommendationMarkdown = `### Business Recommendation

Hospitals can use these insights to **allocate resources by LOS category**:

- **Short stays (≤7 days):** Focus on rapid turnover (beds, discharges, staff coverage).
- **Medium stays (8–14 days):** Prioritize this group as it represents the majority of admissions.
- **Long stays (>14 days):** Plan for higher variability with specialized care units and extended resources.

Together, exploratory analysis and predictive modeling create a **practical, data-driven foundation** for managing patient flow, staffing, and hospital capacity.`
